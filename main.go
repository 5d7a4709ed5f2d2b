package main

import (
	_ "embed"
	"os"
	"strings"

	"geofix/cmd"
)

//go:embed VERSION
var embeddedVersion string

func main() {
	// -ldflags "-X geofix/cmd.Version=..." wins over the embedded file
	if v := strings.TrimSpace(embeddedVersion); v != "" && cmd.Version == "dev" {
		cmd.Version = v
		cmd.ApplyVersion()
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
