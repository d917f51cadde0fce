package main

import (
	"github.com/kestrel-labs/grounder/cmd"
)

func main() {
	cmd.Execute()
}
