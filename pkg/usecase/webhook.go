package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/pkgship/courier/pkg/domain/interfaces"
	"github.com/pkgship/courier/pkg/domain/model"
)

type webhookUseCase struct {
	publisher interfaces.PublishUseCase
	dispatch  interfaces.Dispatcher
}

// NewWebhook creates a new instance of WebhookUseCase. The dispatcher runs
// the pipeline detached so the webhook delivery is acknowledged immediately.
func NewWebhook(publisher interfaces.PublishUseCase, dispatch interfaces.Dispatcher) interfaces.WebhookUseCase {
	return &webhookUseCase{
		publisher: publisher,
		dispatch:  dispatch,
	}
}

// ProcessPush inspects a push event and dispatches the publish pipeline when
// the event creates a tag matching the release pattern. Everything else is
// logged and ignored: branch pushes, tag deletions, non-release tag names.
func (uc *webhookUseCase) ProcessPush(ctx context.Context, event *model.PushEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing push event",
		"id", event.DeliveryID,
		"ref", event.Ref,
		"repository", event.Owner+"/"+event.Repo,
		"sender", event.Sender,
		"created", event.Created,
		"deleted", event.Deleted,
	)

	req := event.ToReleaseRequest()
	if req == nil {
		logger.Info("Push does not activate the publisher",
			"ref", event.Ref,
			"deleted", event.Deleted,
		)
		return nil
	}

	logger.Info("Release tag pushed, dispatching publish pipeline",
		"tag", req.Tag.Name,
		"commit_sha", req.Source.CommitSHA,
	)

	uc.dispatch(ctx, func(ctx context.Context) error {
		_, err := uc.publisher.Publish(ctx, req)
		return err
	})

	return nil
}
