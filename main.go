package main

import (
	"github.com/ledgerlens/ledgerlens/internal/cmd"
)

func main() {
	cmd.Execute()
}
