// Command reflected inspects, seeds and moves reflected entity types.
package main

import (
	"os"

	"github.com/mesh-intelligence/reflected/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
