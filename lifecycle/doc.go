// Package lifecycle sequences process termination.
//
// A Lifecycle moves one way through Running, ShuttingDown and Terminated.
// Both termination paths run the host shutdown hook exactly once, then the
// registered teardown hooks, then exit:
//
//	Quit()            -> shutdown hook -> teardown -> exit(0)
//	FatalError(err)   -> banner -> shutdown hook -> teardown -> log ->
//	                     stderr report -> dialog (unless headless) -> exit(1)
//
// A fatal error raised while shutting down skips the hook and exits 1
// immediately; a quit raised while shutting down is ignored.
package lifecycle
