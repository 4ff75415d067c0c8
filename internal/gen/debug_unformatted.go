package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// debugBuildTag keeps the sidecar out of the package build.
const debugBuildTag = "//go:build ignore\n\n"

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. Failures here never replace the formatting error.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	p := filepath.Join(outDir, debugFilename(filename))

	return os.WriteFile(p, append([]byte(debugBuildTag), content...), filePerm)
}

// debugFilename keeps a .go suffix so editors still highlight the sidecar.
func debugFilename(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
