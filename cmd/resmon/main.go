package main

import (
	"github.com/aaronscribner/macos-dev-resource-monitor/internal/cli"
)

var (
	version = "0.1.0"
)

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
