package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/pkgship/courier/pkg/domain/model"
)

// pyproject mirrors the [project] table of pyproject.toml, the packaging
// metadata the build tool reads.
type pyproject struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
}

// loadProject reads the packaging metadata from a working tree.
func loadProject(dir string) (*model.Project, error) {
	path := filepath.Join(dir, "pyproject.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &model.Project{
		Name:    doc.Project.Name,
		Version: doc.Project.Version,
	}, nil
}
