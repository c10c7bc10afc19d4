// Command pagersim drives the infinite pager core against simulated
// collaborators.
package main

import (
	"os"

	"github.com/go-drift/infinitepager/cmd/pagersim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
