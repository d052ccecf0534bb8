package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/pkgship/courier/pkg/domain/interfaces"
	"github.com/pkgship/courier/pkg/domain/model"
)

type notifier struct {
	client  *slack.Client
	channel string
}

// NewNotifier creates a Slack notifier posting run results to a channel
func NewNotifier(token, channel string) interfaces.Notifier {
	return &notifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyRun posts one message per completed run: green for published runs,
// red for aborted ones with the failed step attached.
func (n *notifier) NotifyRun(ctx context.Context, run *model.PublishRun) error {
	color := "good"
	title := fmt.Sprintf("Published %s", run.Request.Tag.Name)
	if run.Status == model.RunAborted {
		color = "danger"
		title = fmt.Sprintf("Publish of %s aborted", run.Request.Tag.Name)
	}

	fields := []slack.AttachmentField{
		{Title: "Run", Value: run.ID, Short: true},
		{Title: "Status", Value: string(run.Status), Short: true},
	}
	if run.Request.Source != nil {
		fields = append(fields, slack.AttachmentField{
			Title: "Repository",
			Value: fmt.Sprintf("%s/%s@%s", run.Request.Source.Owner, run.Request.Source.Repo, run.Request.Source.CommitSHA),
		})
	}
	if failed := run.FailedStep(); failed != nil {
		fields = append(fields, slack.AttachmentField{
			Title: "Failed step",
			Value: fmt.Sprintf("%s: %s", failed.Step, failed.Error),
		})
	}

	attachment := slack.Attachment{
		Color:  color,
		Title:  title,
		Fields: fields,
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channel, slack.MsgOptionAttachments(attachment))
	if err != nil {
		return fmt.Errorf("failed to post run notification: %w", err)
	}
	return nil
}
