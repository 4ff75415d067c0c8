// Package main provides the CLI entrypoint for swizzle-generator.
//
// swizzle-generator reads swizzle declarations from a YAML mapping file,
// from //swizzle:gen directives on struct types, or from inline expressions,
// and writes one value-receiver accessor per combination of source fields:
//
//	swizzle-generator gen --pkg ./vectors --mapping swizzle.yaml
//	swizzle-generator check --pkg ./...
//	swizzle-generator list --expr "Vec2 { X, Y }"
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
