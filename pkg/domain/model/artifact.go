package model

// Artifact is one distribution file emitted by the build step.
type Artifact struct {
	Path string // Absolute path
	Name string // File name (e.g. "pkg-1.2.3-py3-none-any.whl")
	Size int64  // Size in bytes
}

// ArtifactSet is the enumeration of the build output directory. The set may
// be empty; the upload step is still invoked with it.
type ArtifactSet struct {
	Dir       string
	Artifacts []Artifact
}

// IsEmpty reports whether the build produced no distribution files.
func (s *ArtifactSet) IsEmpty() bool {
	return len(s.Artifacts) == 0
}

// Paths returns the artifact paths in directory order.
func (s *ArtifactSet) Paths() []string {
	paths := make([]string, 0, len(s.Artifacts))
	for _, a := range s.Artifacts {
		paths = append(paths, a.Path)
	}
	return paths
}

// TotalSize returns the summed artifact size in bytes.
func (s *ArtifactSet) TotalSize() int64 {
	var total int64
	for _, a := range s.Artifacts {
		total += a.Size
	}
	return total
}
