package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/pkgship/courier/pkg/domain/interfaces"
	"github.com/pkgship/courier/pkg/domain/model"
)

type publishUseCase struct {
	source    interfaces.SourceClient
	toolchain interfaces.Toolchain
	notifier  interfaces.Notifier
	index     *model.IndexTarget
}

// PublishOption is a functional option for the publish use case
type PublishOption func(*publishUseCase)

// WithNotifier attaches a run-result notifier
func WithNotifier(n interfaces.Notifier) PublishOption {
	return func(uc *publishUseCase) {
		uc.notifier = n
	}
}

// NewPublish creates a new instance of PublishUseCase. The source client may
// be nil when the use case only serves local one-shot runs.
func NewPublish(source interfaces.SourceClient, toolchain interfaces.Toolchain, index *model.IndexTarget, opts ...PublishOption) interfaces.PublishUseCase {
	uc := &publishUseCase{
		source:    source,
		toolchain: toolchain,
		index:     index,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Publish runs the ordered pipeline: checkout, runtime, tools, build, upload.
// The first failing step aborts the remaining sequence; there is no retry and
// no rollback of a partially completed upload.
func (uc *publishUseCase) Publish(ctx context.Context, req *model.ReleaseRequest) (*model.PublishRun, error) {
	logger := ctxlog.From(ctx)

	if req.Tag == nil {
		return nil, goerr.New("release request has no tag")
	}

	run := model.NewPublishRun(uuid.NewString(), req)

	logger.Info("Starting publish run",
		"run_id", run.ID,
		"tag", req.Tag.Name,
		"index_url", uc.index.URL,
	)

	err := uc.execute(ctx, run)
	run.Finish(err)

	if err != nil {
		sentry.CaptureException(err)
		logger.Error("Publish run aborted",
			"run_id", run.ID,
			"tag", req.Tag.Name,
			"error", err,
		)
	} else {
		logger.Info("Publish run completed",
			"run_id", run.ID,
			"tag", req.Tag.Name,
			"status", run.Status,
		)
	}

	uc.notify(ctx, run)

	return run, err
}

// execute runs the steps in order, recording each outcome on the run.
func (uc *publishUseCase) execute(ctx context.Context, run *model.PublishRun) error {
	logger := ctxlog.From(ctx)
	req := run.Request

	startedAt := time.Now()
	checkout, err := uc.checkout(ctx, req)
	run.RecordStep(model.StepCheckout, startedAt, err)
	if err != nil {
		return goerr.Wrap(err, "checkout failed")
	}

	if checkout.Transient {
		defer func() {
			if removeErr := os.RemoveAll(checkout.Root); removeErr != nil {
				logger.Warn("Failed to clean up working copy",
					"dir", checkout.Root,
					"error", removeErr,
				)
			}
		}()
	}

	uc.inspectProject(ctx, checkout.Dir, req.Tag)

	startedAt = time.Now()
	runtime, err := uc.toolchain.EnsureRuntime(ctx)
	run.RecordStep(model.StepRuntime, startedAt, err)
	if err != nil {
		return goerr.Wrap(err, "failed to provision Python runtime")
	}
	logger.Info("Provisioned runtime", "python", runtime.Python, "version", runtime.Version)

	startedAt = time.Now()
	err = uc.toolchain.InstallTools(ctx, runtime)
	run.RecordStep(model.StepTools, startedAt, err)
	if err != nil {
		return goerr.Wrap(err, "failed to install packaging tools")
	}

	startedAt = time.Now()
	artifacts, err := uc.toolchain.Build(ctx, runtime, checkout.Dir)
	run.RecordStep(model.StepBuild, startedAt, err)
	if err != nil {
		return goerr.Wrap(err, "build failed")
	}

	if artifacts.IsEmpty() {
		// The upload tool decides what an empty set means; it is not skipped.
		logger.Warn("Build produced no distribution files", "dist_dir", artifacts.Dir)
	} else {
		logger.Info("Build completed",
			"artifact_count", len(artifacts.Artifacts),
			"total_size_bytes", artifacts.TotalSize(),
		)
	}

	startedAt = time.Now()
	err = uc.toolchain.Upload(ctx, runtime, artifacts, uc.index)
	run.RecordStep(model.StepUpload, startedAt, err)
	if err != nil {
		return goerr.Wrap(err, "upload failed", goerr.V("index_url", uc.index.URL))
	}

	return nil
}

// checkout acquires a clean working copy: the commit zipball for
// webhook-triggered runs, or the given directory for local runs.
func (uc *publishUseCase) checkout(ctx context.Context, req *model.ReleaseRequest) (*model.Checkout, error) {
	if req.LocalDir != "" {
		info, err := os.Stat(req.LocalDir)
		if err != nil {
			return nil, fmt.Errorf("working tree not accessible: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("working tree %s is not a directory", req.LocalDir)
		}
		return &model.Checkout{Root: req.LocalDir, Dir: req.LocalDir}, nil
	}

	if uc.source == nil {
		return nil, fmt.Errorf("no source client configured for remote checkout")
	}

	src := req.Source
	zipData, err := uc.source.DownloadZipball(ctx, src.Owner, src.Repo, src.CommitSHA)
	if err != nil {
		return nil, fmt.Errorf("failed to download zipball for %s/%s@%s: %w", src.Owner, src.Repo, src.CommitSHA, err)
	}

	ctxlog.From(ctx).Info("Downloaded zipball",
		"size_bytes", len(zipData),
		"owner", src.Owner,
		"repo", src.Repo,
	)

	return uc.extractZip(ctx, zipData)
}

// inspectProject logs the packaging metadata the build step will read. A
// version/tag mismatch is surfaced as a warning, not a gate.
func (uc *publishUseCase) inspectProject(ctx context.Context, dir string, tag *model.ReleaseTag) {
	logger := ctxlog.From(ctx)

	project, err := loadProject(dir)
	if err != nil {
		logger.Warn("Could not read packaging metadata", "dir", dir, "error", err)
		return
	}

	logger.Info("Publishing project",
		"name", project.Name,
		"version", project.Version,
		"tag", tag.Name,
	)

	if project.Version != "" && project.Version != tag.Version() {
		logger.Warn("Packaging metadata version differs from tag",
			"metadata_version", project.Version,
			"tag_version", tag.Version(),
		)
	}
}

// extractZip extracts ZIP data to a temporary directory
func (uc *publishUseCase) extractZip(ctx context.Context, zipData []byte) (*model.Checkout, error) {
	logger := ctxlog.From(ctx)

	tempDir, err := os.MkdirTemp("", "courier-checkout-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	if err := os.Chmod(tempDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to set directory permissions for %s: %w", tempDir, err)
	}

	logger.Debug("Created temporary directory", "temp_dir", tempDir)

	zipReader, err := zip.NewReader(bytes.NewReader(zipData), int64(len(zipData)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var extractedFiles []string
	var totalSize int64

	for _, file := range zipReader.File {
		if err := extractFile(file, tempDir); err != nil {
			return nil, fmt.Errorf("failed to extract file %s: %w", file.Name, err)
		}

		extractedFiles = append(extractedFiles, file.Name)
		totalSize += int64(file.UncompressedSize64)
	}

	checkout := &model.Checkout{
		Root:      tempDir,
		Dir:       workTreeRoot(tempDir),
		Files:     extractedFiles,
		Size:      totalSize,
		Transient: true,
	}

	logger.Info("Extracted zipball",
		"work_dir", checkout.Dir,
		"file_count", len(checkout.Files),
		"total_size_bytes", checkout.Size,
	)

	return checkout, nil
}

// workTreeRoot resolves the working tree inside an extraction root. GitHub
// zipballs nest the tree under a single "<repo>-<sha>" directory.
func workTreeRoot(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil || len(entries) != 1 || !entries[0].IsDir() {
		return root
	}
	return filepath.Join(root, entries[0].Name())
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	// Security check: prevent path traversal attacks
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid file path detected: file=%s, dest=%s", file.Name, destPath)
	}

	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open file %s in zip: %w", file.Name, err)
	}
	defer rc.Close()

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.FileInfo().Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create parent directories %s: %w", filepath.Dir(destPath), err)
	}

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", destPath, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return fmt.Errorf("failed to copy file content to %s: %w", destPath, err)
	}

	return nil
}

// notify reports the run result when a notifier is configured. Notification
// failures never change the run outcome.
func (uc *publishUseCase) notify(ctx context.Context, run *model.PublishRun) {
	if uc.notifier == nil {
		return
	}

	if err := uc.notifier.NotifyRun(ctx, run); err != nil {
		ctxlog.From(ctx).Warn("Failed to send run notification",
			"run_id", run.ID,
			"error", err,
		)
	}
}
