// Command shelf manages ordered category collections.
package main

import (
	"os"

	"github.com/Hero-Over/TachiyomiSY-sub001/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand(), os.Stderr))
}
