// Command cyls is Cypher language support: an LSP server, a schema
// introspector, and an interactive completion playground.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "cyls",
		Usage: "Cypher language support",
		Commands: []*cli.Command{
			lspCommand(),
			introspectCommand(),
			replCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
