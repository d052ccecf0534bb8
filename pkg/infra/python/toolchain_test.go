package python_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/pkgship/courier/pkg/domain/model"
	"github.com/pkgship/courier/pkg/infra/python"
)

type runnerCall struct {
	Dir  string
	Env  []string
	Name string
	Args []string
}

// fakeRunner records invocations instead of spawning processes
type fakeRunner struct {
	calls   []runnerCall
	version string
	err     error
}

func (r *fakeRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	r.calls = append(r.calls, runnerCall{Dir: dir, Env: env, Name: name, Args: args})
	if r.err != nil {
		return "", r.err
	}
	if len(args) == 1 && args[0] == "--version" {
		return r.version, nil
	}
	return "", nil
}

// testPython returns an existing executable path so interpreter probing
// succeeds without a Python installation.
func testPython(t *testing.T) string {
	t.Helper()
	path, err := os.Executable()
	gt.NoError(t, err)
	return path
}

func TestToolchain_EnsureRuntime(t *testing.T) {
	runner := &fakeRunner{version: "Python 3.12.1\n"}
	tc := python.New(python.WithPython(testPython(t)), python.WithRunner(runner))

	rt, err := tc.EnsureRuntime(context.Background())
	gt.NoError(t, err)
	gt.Value(t, rt.Version).Equal("3.12.1")
	gt.Value(t, rt.Python).NotEqual("")
}

func TestToolchain_EnsureRuntime_RejectsPython2(t *testing.T) {
	runner := &fakeRunner{version: "Python 2.7.18\n"}
	tc := python.New(python.WithPython(testPython(t)), python.WithRunner(runner))

	rt, err := tc.EnsureRuntime(context.Background())
	gt.Error(t, err)
	gt.Value(t, rt).Nil()
}

func TestToolchain_EnsureRuntime_MissingInterpreter(t *testing.T) {
	runner := &fakeRunner{version: "Python 3.12.1\n"}
	tc := python.New(python.WithPython("/no/such/python"), python.WithRunner(runner))

	rt, err := tc.EnsureRuntime(context.Background())
	gt.Error(t, err)
	gt.Value(t, rt).Nil()
	gt.Number(t, len(runner.calls)).Equal(0)
}

func TestToolchain_InstallTools(t *testing.T) {
	runner := &fakeRunner{}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	gt.NoError(t, tc.InstallTools(context.Background(), rt))

	gt.Number(t, len(runner.calls)).Equal(1)
	call := runner.calls[0]
	gt.Value(t, call.Name).Equal("/usr/bin/python3")
	gt.Value(t, call.Args).Equal([]string{"-m", "pip", "install", "--upgrade", "pip", "build", "twine"})
}

func TestToolchain_InstallTools_Pinned(t *testing.T) {
	runner := &fakeRunner{}
	tc := python.New(
		python.WithRunner(runner),
		python.WithTools("pip", "build==1.2.2", "twine==5.1.1"),
	)
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	gt.NoError(t, tc.InstallTools(context.Background(), rt))
	gt.Value(t, runner.calls[0].Args).Equal(
		[]string{"-m", "pip", "install", "--upgrade", "pip", "build==1.2.2", "twine==5.1.1"})
}

func TestToolchain_Build(t *testing.T) {
	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	gt.NoError(t, os.MkdirAll(distDir, 0755))
	gt.NoError(t, os.WriteFile(filepath.Join(distDir, "widget-1.0.0-py3-none-any.whl"), []byte("wheel"), 0644))
	gt.NoError(t, os.WriteFile(filepath.Join(distDir, "widget-1.0.0.tar.gz"), []byte("sdist!"), 0644))

	runner := &fakeRunner{}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	artifacts, err := tc.Build(context.Background(), rt, workDir)
	gt.NoError(t, err)

	// Build ran in the working tree with no configuration overrides
	call := runner.calls[0]
	gt.Value(t, call.Dir).Equal(workDir)
	gt.Value(t, call.Args).Equal([]string{"-m", "build"})

	gt.Number(t, len(artifacts.Artifacts)).Equal(2)
	gt.Value(t, artifacts.Dir).Equal(distDir)
	gt.Number(t, artifacts.TotalSize()).Equal(int64(11))
}

func TestToolchain_Build_NoOutput(t *testing.T) {
	workDir := t.TempDir() // build emits nothing, dist/ never appears

	runner := &fakeRunner{}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	artifacts, err := tc.Build(context.Background(), rt, workDir)
	gt.NoError(t, err)
	gt.True(t, artifacts.IsEmpty())
}

func TestToolchain_Build_CommandFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	artifacts, err := tc.Build(context.Background(), rt, t.TempDir())
	gt.Error(t, err)
	gt.Value(t, artifacts).Nil()
	gt.String(t, err.Error()).Contains("build failed")
}

func TestToolchain_Upload(t *testing.T) {
	runner := &fakeRunner{}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	set := &model.ArtifactSet{
		Dir: "/work/dist",
		Artifacts: []model.Artifact{
			{Path: "/work/dist/widget-1.0.0.tar.gz", Name: "widget-1.0.0.tar.gz"},
			{Path: "/work/dist/widget-1.0.0-py3-none-any.whl", Name: "widget-1.0.0-py3-none-any.whl"},
		},
	}
	target := model.NewIndexTarget("", "secret-token")

	gt.NoError(t, tc.Upload(context.Background(), rt, set, target))

	call := runner.calls[0]
	gt.Value(t, call.Args).Equal([]string{
		"-m", "twine", "upload", "--non-interactive",
		"--repository-url", model.DefaultIndexURL,
		"/work/dist/widget-1.0.0.tar.gz",
		"/work/dist/widget-1.0.0-py3-none-any.whl",
	})

	// Credentials travel via environment, never via arguments
	env := strings.Join(call.Env, "\n")
	gt.String(t, env).Contains("TWINE_USERNAME=__token__")
	gt.String(t, env).Contains("TWINE_PASSWORD=secret-token")
	gt.String(t, strings.Join(call.Args, " ")).NotContains("secret-token")
}

func TestToolchain_Upload_EmptySetStillInvoked(t *testing.T) {
	runner := &fakeRunner{}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	set := &model.ArtifactSet{Dir: "/work/dist"}
	target := model.NewIndexTarget("", "secret-token")

	gt.NoError(t, tc.Upload(context.Background(), rt, set, target))

	// Invoked with the empty set: what that means is the upload tool's call
	gt.Number(t, len(runner.calls)).Equal(1)
	gt.Value(t, runner.calls[0].Args).Equal([]string{
		"-m", "twine", "upload", "--non-interactive",
		"--repository-url", model.DefaultIndexURL,
	})
}

func TestToolchain_Upload_DuplicateVersionRejection(t *testing.T) {
	runner := &fakeRunner{err: errors.New("400 File already exists")}
	tc := python.New(python.WithRunner(runner))
	rt := &model.Runtime{Python: "/usr/bin/python3", Version: "3.12.1"}

	set := &model.ArtifactSet{
		Dir:       "/work/dist",
		Artifacts: []model.Artifact{{Path: "/work/dist/widget-1.0.0.tar.gz", Name: "widget-1.0.0.tar.gz"}},
	}

	err := tc.Upload(context.Background(), rt, set, model.NewIndexTarget("", "secret-token"))
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("upload to")
}
