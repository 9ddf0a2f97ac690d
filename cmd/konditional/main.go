// Command konditional is a demo CLI over a snapshot file: load it, decode
// it against a schema derived from its own payload, and evaluate one flag
// for a synthetic request context. It mirrors the teacher's flagship CLI
// (cmd/flagship), trading its live HTTP client for a local snapshot file
// since konditional is a library, not a hosted service.
package main

import (
	"fmt"
	"os"

	"github.com/konditional-dev/konditional/cmd/konditional/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
