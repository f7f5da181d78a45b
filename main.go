package main

import (
	"github.com/sw33tLie/pwcheck/cmd"
)

func main() {
	cmd.Execute()
}
