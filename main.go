package main

import "github.com/githubnext/stratcalc/internal/cmd"

func main() {
	cmd.SetVersion(buildVersionString())
	cmd.Execute()
}
