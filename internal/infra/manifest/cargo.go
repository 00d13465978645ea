// Package manifest reads build manifests of Rust projects.
package manifest

import (
	"fmt"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/rscheck/internal/domain"
)

// packageNamePattern finds the first name assignment after a [package] header.
// It is used when the manifest is not valid TOML.
var packageNamePattern = regexp.MustCompile(`(?ms)^\s*\[package\][^\[]*?\s*name\s*=\s*["']([^"']+)["']`)

// Ensure CargoReader implements domain.ManifestReader.
var _ domain.ManifestReader = (*CargoReader)(nil)

// CargoReader reads Cargo.toml files.
type CargoReader struct{}

// NewCargoReader creates a new CargoReader.
func NewCargoReader() *CargoReader {
	return &CargoReader{}
}

// PackageName returns the package name declared in the Cargo.toml at path.
// An empty name with a nil error means the manifest has no recognizable name.
func (r *CargoReader) PackageName(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	return ParsePackageName(data), nil
}

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
}

// ParsePackageName extracts the [package] name from manifest content.
// Well-formed TOML is decoded; anything else falls back to a lenient pattern match.
func ParsePackageName(data []byte) string {
	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err == nil && m.Package.Name != "" {
		return m.Package.Name
	}

	match := packageNamePattern.FindSubmatch(data)
	if match == nil {
		return ""
	}
	return string(match[1])
}
