// Command smartfarm manages the records of an agricultural cooperative.
package main

import (
	"os"

	"github.com/mesh-intelligence/smartfarm/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
