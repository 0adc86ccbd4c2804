package internalcheck

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/mjszczep/stasm-go"

type parsedFile struct {
	pkg  string
	path string
	file *ast.File
}

// loadFiles parses every Go file of the packages matching pattern, including
// files excluded by build constraints, so both the cgo and the stub side of
// the backend are checked.
func loadFiles(t *testing.T, pattern string, mode parser.Mode) (*token.FileSet, []parsedFile) {
	t.Helper()

	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatalf("no packages matched %s", pattern)
	}

	fset := token.NewFileSet()
	var files []parsedFile
	for _, pkg := range pkgs {
		paths := append(append([]string(nil), pkg.GoFiles...), pkg.IgnoredFiles...)
		for _, path := range paths {
			f, err := parser.ParseFile(fset, path, nil, mode)
			if err != nil {
				t.Fatalf("parse %s: %v", path, err)
			}
			files = append(files, parsedFile{pkg: pkg.PkgPath, path: path, file: f})
		}
	}
	return fset, files
}
