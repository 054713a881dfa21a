// Command tlbsim simulates a FIFO translation lookaside buffer.
package main

import "github.com/sarchlab/tlbsim/tlbsim/cmd"

func main() {
	cmd.Execute()
}
