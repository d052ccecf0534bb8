package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/pkgship/courier/pkg/domain/interfaces"
	"github.com/pkgship/courier/pkg/domain/model"
)

// DistDir is the conventional build output directory consumed by the upload
// step.
const DistDir = "dist"

// Runner executes one external command and returns its combined output.
// Extracted so tests can record invocations without a Python installation.
type Runner interface {
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Toolchain drives pip, build and twine through a Python interpreter.
type Toolchain struct {
	candidates []string
	tools      []string
	runner     Runner
}

// Option is a functional option for Toolchain configuration
type Option func(*Toolchain)

// WithPython sets an explicit interpreter instead of probing candidates
func WithPython(path string) Option {
	return func(tc *Toolchain) {
		tc.candidates = []string{path}
	}
}

// WithTools overrides the installed tool specs, e.g. to pin versions
// ("build==1.2.2"). The default installs the latest of pip, build and twine.
func WithTools(tools ...string) Option {
	return func(tc *Toolchain) {
		tc.tools = tools
	}
}

// WithRunner replaces the process runner (used in tests)
func WithRunner(r Runner) Option {
	return func(tc *Toolchain) {
		tc.runner = r
	}
}

// New creates a Toolchain
func New(opts ...Option) interfaces.Toolchain {
	tc := &Toolchain{
		candidates: []string{"python3", "python"},
		tools:      []string{"pip", "build", "twine"},
		runner:     execRunner{},
	}

	for _, opt := range opts {
		opt(tc)
	}

	return tc
}

// EnsureRuntime probes the candidate interpreters and returns the first one
// reporting a 3.x version.
func (tc *Toolchain) EnsureRuntime(ctx context.Context) (*model.Runtime, error) {
	logger := ctxlog.From(ctx)

	var lastErr error
	for _, candidate := range tc.candidates {
		path, err := exec.LookPath(candidate)
		if err != nil {
			lastErr = err
			continue
		}

		out, err := tc.runner.Run(ctx, "", nil, path, "--version")
		if err != nil {
			lastErr = err
			continue
		}

		version, ok := parsePythonVersion(out)
		if !ok {
			lastErr = fmt.Errorf("unexpected version output from %s: %q", path, strings.TrimSpace(out))
			continue
		}

		logger.Debug("Resolved Python runtime", "python", path, "version", version)
		return &model.Runtime{Python: path, Version: version}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no interpreter candidates configured")
	}
	return nil, fmt.Errorf("no Python 3 interpreter found: %w", lastErr)
}

// parsePythonVersion extracts the version from "Python 3.12.4" style output
// and checks the 3.x constraint.
func parsePythonVersion(out string) (string, bool) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Python" {
		return "", false
	}

	version := fields[1]
	if version != "3" && !strings.HasPrefix(version, "3.") {
		return "", false
	}
	return version, true
}

// InstallTools installs the packaging utilities through pip.
func (tc *Toolchain) InstallTools(ctx context.Context, rt *model.Runtime) error {
	args := append([]string{"-m", "pip", "install", "--upgrade"}, tc.tools...)

	out, err := tc.runner.Run(ctx, "", nil, rt.Python, args...)
	if err != nil {
		return fmt.Errorf("failed to install packaging tools: %w", err)
	}

	ctxlog.From(ctx).Debug("Installed packaging tools", "tools", tc.tools, "output", strings.TrimSpace(out))
	return nil
}

// Build invokes the build tool in workDir with no configuration overrides and
// enumerates the output directory. Zero artifacts is not an error.
func (tc *Toolchain) Build(ctx context.Context, rt *model.Runtime, workDir string) (*model.ArtifactSet, error) {
	out, err := tc.runner.Run(ctx, workDir, nil, rt.Python, "-m", "build")
	if err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}

	ctxlog.From(ctx).Debug("Build completed", "output", strings.TrimSpace(out))

	return collectArtifacts(filepath.Join(workDir, DistDir))
}

// collectArtifacts enumerates the distribution files in dir. A missing
// directory yields an empty set: the upload step still runs with it.
func collectArtifacts(dir string) (*model.ArtifactSet, error) {
	set := &model.ArtifactSet{Dir: dir}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate output directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat artifact %s: %w", entry.Name(), err)
		}

		set.Artifacts = append(set.Artifacts, model.Artifact{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
			Size: info.Size(),
		})
	}

	return set, nil
}

// Upload invokes twine with every artifact in the set. The token is passed
// via environment variables and never appears in arguments or logs.
func (tc *Toolchain) Upload(ctx context.Context, rt *model.Runtime, artifacts *model.ArtifactSet, target *model.IndexTarget) error {
	env := []string{
		"TWINE_USERNAME=" + target.Username,
		"TWINE_PASSWORD=" + target.Token,
	}

	args := []string{"-m", "twine", "upload", "--non-interactive", "--repository-url", target.URL}
	args = append(args, artifacts.Paths()...)

	out, err := tc.runner.Run(ctx, "", env, rt.Python, args...)
	if err != nil {
		return fmt.Errorf("upload to %s failed: %w", target.URL, err)
	}

	ctxlog.From(ctx).Debug("Upload completed", "index_url", target.URL, "output", strings.TrimSpace(out))
	return nil
}
