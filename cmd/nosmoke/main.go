// Package main is the single-binary entrypoint for the NoSmoke service.
package main

import "github.com/nosmoke-health/nosmoke/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
