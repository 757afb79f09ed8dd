// Package taskfile loads task definitions from HCL files and registers them
// through a registrar.Registrar.
//
// A taskfile is a sequence of task blocks:
//
//	task "test" {
//	  deps    = ["build"]
//	  command = "go test ./..."
//	  help = {
//	    msg  = "Run the tests of ${task.name}"
//	    args = ["short", { name = "verbose", msg = "Verbose output", aliases = ["v"] }]
//	  }
//	}
//
// help is either a string or an object with msg and args; args is a list of
// names and objects, or an object mapping names to messages. A help
// expression that references task.name or task.deps becomes a help.Computed
// and is re-evaluated every time help is rendered. Every expression can read
// the process environment as env.NAME and call upper, lower, join, format and
// trimspace.
//
// command is a shell string run with "sh -c" or a list used as argv. Extra
// command-line arguments are appended. A task without a command only runs
// its deps.
package taskfile
