package interfaces

import (
	"context"

	"github.com/pkgship/courier/pkg/domain/model"
)

// WebhookUseCase defines the interface for push webhook processing
type WebhookUseCase interface {
	// ProcessPush inspects a push event and dispatches the publish pipeline
	// when the event creates a release tag
	ProcessPush(ctx context.Context, event *model.PushEvent) error
}

// PublishUseCase defines operations for running the publish pipeline
type PublishUseCase interface {
	// Publish runs the ordered pipeline for a release request. The returned
	// run record is non-nil even when the run aborts.
	Publish(ctx context.Context, req *model.ReleaseRequest) (*model.PublishRun, error)
}
