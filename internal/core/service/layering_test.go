package service

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// The core packages must not depend on transport or storage code.
func TestCoreImportsStayInsideCore(t *testing.T) {
	forbidden := []string{
		"github.com/manhwalog/manhwa-api/internal/api",
		"github.com/manhwalog/manhwa-api/internal/infrastructure",
	}

	fset := token.NewFileSet()
	err := filepath.WalkDir("..", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		for _, imp := range f.Imports {
			p, _ := strconv.Unquote(imp.Path.Value)
			for _, prefix := range forbidden {
				if p == prefix || strings.HasPrefix(p, prefix+"/") {
					t.Errorf("%s imports %s", path, p)
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk core packages: %v", err)
	}
}
