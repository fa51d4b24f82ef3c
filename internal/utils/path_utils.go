// Package utils provides small path-name helpers shared by the parser
// and module registry, grounded on the teacher's
// internal/utils/path_utils.go.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/mcgru/c3decl/internal/config"
)

// ResolveImportPath resolves an import path relative to a base
// directory if it starts with a dot, otherwise returns it unchanged.
func ResolveImportPath(baseDir, importPath string) string {
	if len(importPath) > 0 && importPath[0] == '.' {
		if baseDir != "." && baseDir != "" {
			return filepath.Join(baseDir, importPath)
		}
	}
	return importPath
}

// ExtractModuleName derives a module name from a file path (§4.B
// "module / import": "otherwise derive module name from file path"):
// the base filename with the source extension stripped.
func ExtractModuleName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, config.SourceFileExt)
	return name
}

// GetModuleDir returns the directory context for a module path.
func GetModuleDir(path string) string {
	if strings.HasSuffix(path, config.SourceFileExt) {
		return filepath.Dir(path)
	}
	return path
}
