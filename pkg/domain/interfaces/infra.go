package interfaces

import (
	"context"

	"github.com/pkgship/courier/pkg/domain/model"
)

// SourceClient defines operations for acquiring repository contents
type SourceClient interface {
	// DownloadZipball downloads the source code zipball for a specific commit
	DownloadZipball(ctx context.Context, owner, repo, ref string) ([]byte, error)
}

// Toolchain drives the external packaging tools. Each call blocks until the
// invoked process exits; a non-nil error means a non-zero exit.
type Toolchain interface {
	// EnsureRuntime locates a Python 3 interpreter
	EnsureRuntime(ctx context.Context) (*model.Runtime, error)

	// InstallTools installs pip, build and twine at their latest versions
	InstallTools(ctx context.Context, rt *model.Runtime) error

	// Build invokes the build tool in workDir and enumerates the output
	// directory. An empty artifact set is not an error.
	Build(ctx context.Context, rt *model.Runtime, workDir string) (*model.ArtifactSet, error)

	// Upload invokes the upload tool with every artifact in the set, even
	// when the set is empty. Token authentication is passed via environment
	// variables and never logged.
	Upload(ctx context.Context, rt *model.Runtime, artifacts *model.ArtifactSet, target *model.IndexTarget) error
}

// Notifier reports completed publish runs
type Notifier interface {
	NotifyRun(ctx context.Context, run *model.PublishRun) error
}

// Dispatcher runs a handler detached from the caller's request context
type Dispatcher func(ctx context.Context, handler func(ctx context.Context) error)
