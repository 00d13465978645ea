package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Source and manifest names recognized when resolving an executable name.
const (
	SourceSuffix     = ".rs"
	ManifestFileName = "Cargo.toml"
)

// ResolveExecutableName determines the name of the compiled program.
//
// An explicit name wins. Otherwise the first file with the .rs suffix gives
// the name (its base name without extension). Failing that, a Cargo.toml in
// the file list is read for its package name. Paths are resolved against dir.
func ResolveExecutableName(files []string, explicit, dir string, manifests ManifestReader) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	for _, f := range files {
		if strings.HasSuffix(f, SourceSuffix) {
			base := filepath.Base(f)
			return strings.TrimSuffix(base, filepath.Ext(base)), nil
		}
	}

	for _, f := range files {
		if f != ManifestFileName {
			continue
		}
		if manifests == nil {
			return "", fmt.Errorf("%w: no manifest reader for %s", ErrExecutableName, f)
		}
		path := f
		if dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		name, err := manifests.PackageName(path)
		if err != nil {
			return "", fmt.Errorf("%w: parse %s: %w", ErrExecutableName, f, err)
		}
		if name == "" {
			return "", fmt.Errorf("%w: %s declares no package name", ErrExecutableName, f)
		}
		return name, nil
	}

	return "", fmt.Errorf("%w: no exe name given and no %s file or %s found", ErrExecutableName, SourceSuffix, ManifestFileName)
}
