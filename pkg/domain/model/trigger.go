package model

import (
	"strings"
	"time"
)

const tagRefPrefix = "refs/tags/"

// PushEvent represents a push webhook delivery from GitHub
type PushEvent struct {
	DeliveryID string    // Retrieved from X-GitHub-Delivery header
	Ref        string    // Full ref (e.g. "refs/tags/v1.2.3")
	After      string    // Commit SHA the ref points to after the push
	Created    bool      // Ref was created by this push
	Deleted    bool      // Ref was deleted by this push
	Owner      string    // Repository owner
	Repo       string    // Repository name
	Sender     string    // User who pushed
	ReceivedAt time.Time // Time when the delivery was received
}

// TagName returns the tag name for tag refs, or "" for branch refs.
func (e *PushEvent) TagName() string {
	if !strings.HasPrefix(e.Ref, tagRefPrefix) {
		return ""
	}
	return strings.TrimPrefix(e.Ref, tagRefPrefix)
}

// ReleaseTag returns the parsed release tag when this push activates the
// publisher: a non-deleting push of a tag matching the release pattern.
// Deleting a tag never triggers; re-creating a deleted tag triggers again,
// which repeats the publish attempt (the index rejects the duplicate).
func (e *PushEvent) ReleaseTag() (*ReleaseTag, bool) {
	if e.Deleted {
		return nil, false
	}

	name := e.TagName()
	if name == "" || !IsReleaseTag(name) {
		return nil, false
	}

	tag, err := ParseReleaseTag(name)
	if err != nil {
		return nil, false
	}
	return tag, true
}

// ToReleaseRequest converts the push event into a publish pipeline request.
// It returns nil when the event does not activate the publisher.
func (e *PushEvent) ToReleaseRequest() *ReleaseRequest {
	tag, ok := e.ReleaseTag()
	if !ok {
		return nil
	}

	return &ReleaseRequest{
		Tag: tag,
		Source: &Source{
			Owner:     e.Owner,
			Repo:      e.Repo,
			CommitSHA: e.After,
		},
	}
}
