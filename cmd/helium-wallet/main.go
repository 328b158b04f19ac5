// Command helium-wallet is a command line wallet for the Helium blockchain.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp()).ExecuteContext(context.Background()); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
