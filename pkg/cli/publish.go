package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/pkgship/courier/pkg/cli/config"
	"github.com/pkgship/courier/pkg/domain/model"
	slackinfra "github.com/pkgship/courier/pkg/infra/slack"
	"github.com/pkgship/courier/pkg/usecase"
)

func cmdPublish() *cli.Command {
	var (
		tagName      string
		workDir      string
		indexCfg     config.Index
		toolchainCfg config.Toolchain
		sentryCfg    config.Sentry
		slackCfg     config.Slack
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "tag",
			Usage:       "Release tag to publish (must match vMAJOR.MINOR.PATCH)",
			Required:    true,
			Destination: &tagName,
		},
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Working tree to build",
			Value:       ".",
			Destination: &workDir,
		},
	}
	flags = append(flags, indexCfg.Flags()...)
	flags = append(flags, toolchainCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Run the publish pipeline once against a local working tree",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			// The same gate as the webhook trigger: a non-release tag never
			// starts the pipeline.
			tag, err := model.ParseReleaseTag(tagName)
			if err != nil {
				return goerr.Wrap(err, "refusing to publish")
			}

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			var publishOpts []usecase.PublishOption
			if slackCfg.Enabled() {
				publishOpts = append(publishOpts, usecase.WithNotifier(
					slackinfra.NewNotifier(slackCfg.Token, slackCfg.Channel),
				))
			}

			uc := usecase.NewPublish(nil, newToolchain(&toolchainCfg), indexCfg.Target(), publishOpts...)

			run, err := uc.Publish(ctx, &model.ReleaseRequest{
				Tag:      tag,
				LocalDir: workDir,
			})
			printRunSummary(run)

			return err
		},
	}
}

// printRunSummary writes a colored per-step summary of a finished run.
func printRunSummary(run *model.PublishRun) {
	if run == nil {
		return
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, step := range run.Steps {
		mark := green("ok")
		if step.Status == model.StepFailed {
			mark = red("failed")
		}
		fmt.Fprintf(os.Stdout, "%-10s %s (%s)\n",
			step.Step, mark, step.FinishedAt.Sub(step.StartedAt).Round(time.Millisecond))
	}

	switch run.Status {
	case model.RunPublished:
		fmt.Fprintf(os.Stdout, "%s %s\n", green("published"), run.Request.Tag.Name)
	case model.RunAborted:
		fmt.Fprintf(os.Stdout, "%s %s\n", red("aborted"), run.Request.Tag.Name)
	}
}
