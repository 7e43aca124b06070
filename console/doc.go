// Package console implements the non-blocking console line editor.
//
// Each call to Console.Poll is one complete poll cycle: it drains whatever
// bytes are ready, handling backspace (BS or DEL) and treating '\n' or '\r'
// as the end of a line, and returns immediately. An over-long line is
// discarded with a warning and accumulation restarts empty.
//
//	con := console.New(console.Stdin(), logger)
//	for running {
//	    if line, ok := con.Poll(); ok {
//	        execute(line)
//	    }
//	    // rest of the frame
//	}
package console
