package workflow

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/heartmarshall/doccontrol-backend/internal/domain"
)

//go:embed definitions/*.yaml
var builtinFS embed.FS

// BuiltIn returns the definitions shipped with the service (ncr, document, expense).
func BuiltIn() ([]domain.WorkflowDefinition, error) {
	sub, err := fs.Sub(builtinFS, "definitions")
	if err != nil {
		return nil, fmt.Errorf("open built-in definitions: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir reads every *.yaml / *.yml file in dir.
func LoadDir(dir string) ([]domain.WorkflowDefinition, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every *.yaml / *.yml file at the root of fsys in name order.
func LoadFS(fsys fs.FS) ([]domain.WorkflowDefinition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list definitions: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var defs []domain.WorkflowDefinition
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := path.Ext(e.Name()); ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		def, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
