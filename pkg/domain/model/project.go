package model

// Project is the packaging metadata read from pyproject.toml. It is logged
// before the build step; a version/tag mismatch is a warning, not a gate.
type Project struct {
	Name    string
	Version string
}
