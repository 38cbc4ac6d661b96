// Command pld is the thin cobra entrypoint over internal/cli/commands,
// grounded on the teacher's cmd/conduit/main.go but delegating build
// identity and command wiring to the commands package rather than
// duplicating it in main, since build identity is set via -ldflags
// against commands.Version/GitCommit/BuildDate either way.
package main

import (
	"fmt"
	"os"

	"github.com/pld-lang/pld/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
