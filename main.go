// main is the entry point for the finsight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/finsight/finsight/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
