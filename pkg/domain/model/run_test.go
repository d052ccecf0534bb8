package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/pkgship/courier/pkg/domain/model"
)

func TestPublishRun_Lifecycle(t *testing.T) {
	tag, err := model.ParseReleaseTag("v1.0.0")
	gt.NoError(t, err)

	run := model.NewPublishRun("run-1", &model.ReleaseRequest{Tag: tag, LocalDir: "."})

	run.RecordStep(model.StepCheckout, time.Now(), nil)
	run.RecordStep(model.StepRuntime, time.Now(), nil)
	run.RecordStep(model.StepBuild, time.Now(), errors.New("build exploded"))
	run.Finish(errors.New("build exploded"))

	gt.Value(t, run.Status).Equal(model.RunAborted)
	gt.Number(t, len(run.Steps)).Equal(3)

	failed := run.FailedStep()
	gt.NotNil(t, failed)
	gt.Value(t, failed.Step).Equal(model.StepBuild)
	gt.String(t, failed.Error).Contains("build exploded")
}

func TestPublishRun_Published(t *testing.T) {
	tag, err := model.ParseReleaseTag("v1.0.0")
	gt.NoError(t, err)

	run := model.NewPublishRun("run-2", &model.ReleaseRequest{Tag: tag, LocalDir: "."})
	for _, step := range model.StepOrder() {
		run.RecordStep(step, time.Now(), nil)
	}
	run.Finish(nil)

	gt.Value(t, run.Status).Equal(model.RunPublished)
	gt.Number(t, len(run.Steps)).Equal(len(model.StepOrder()))
	gt.Value(t, run.FailedStep()).Nil()
}

func TestNewIndexTarget_Defaults(t *testing.T) {
	target := model.NewIndexTarget("", "tok")
	gt.Value(t, target.URL).Equal(model.DefaultIndexURL)
	gt.Value(t, target.Username).Equal(model.UsernameToken)

	custom := model.NewIndexTarget("https://upload.pypi.org/legacy/", "tok")
	gt.Value(t, custom.URL).Equal("https://upload.pypi.org/legacy/")
}
