package main

import (
	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
