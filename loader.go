package scss

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2023–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/scss/ast"
)

// FileLoader resolves `@import` URLs against the filesystem, following
// the usual candidate order: the name itself with an `.scss` extension,
// its partial variant with a leading underscore, the literal name, and
// the directory index files. The importing file's directory is searched
// before the configured load paths.
type FileLoader struct {
	Paths []string
	Parse ParseFunc
}

// FindImport resolves url relative to fromDir and the load paths.
func (l *FileLoader) FindImport(url, fromDir string) (string, bool) {
	dirs := append([]string{fromDir}, l.Paths...)
	for _, dir := range dirs {
		for _, candidate := range candidates(url) {
			path := filepath.Join(dir, candidate)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				tracer().Debugf("resolved import %q to %q", url, path)
				return path, true
			}
		}
	}
	return "", false
}

// LoadSheet reads and parses a resolved import.
func (l *FileLoader) LoadSheet(path string) (*ast.StyleSheet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sheet, err := l.Parse(path, src)
	if err != nil {
		return nil, err
	}
	sheet.URL = path
	return sheet, nil
}

// MapLoader resolves imports from an in-memory map of pre-parsed
// stylesheets, keyed by URL. Intended for tests and embedded use.
type MapLoader map[string]*ast.StyleSheet

// FindImport reports whether a sheet is registered under url.
func (m MapLoader) FindImport(url, fromDir string) (string, bool) {
	_, ok := m[url]
	return url, ok
}

// LoadSheet returns the registered sheet.
func (m MapLoader) LoadSheet(path string) (*ast.StyleSheet, error) {
	sheet, ok := m[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return sheet, nil
}

// candidates lists the file names an import URL may refer to, in
// resolution order.
func candidates(url string) []string {
	dir, name := filepath.Split(url)
	if strings.HasSuffix(name, ".scss") || strings.HasSuffix(name, ".css") {
		return []string{url, filepath.Join(dir, "_"+name)}
	}
	return []string{
		filepath.Join(dir, name+".scss"),
		filepath.Join(dir, "_"+name+".scss"),
		url,
		filepath.Join(url, "index.scss"),
		filepath.Join(url, "_index.scss"),
	}
}
