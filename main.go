package main

import (
	"os"

	"github.com/siyuan-infoblox/sort-imports/pkg/cmd"
	"github.com/siyuan-infoblox/sort-imports/pkg/version"
)

func main() {
	if err := cmd.Execute(version.Get().Version); err != nil {
		os.Exit(1)
	}
}
