package services

import "context"

// ChangePublisher notifies interested consumers that a record changed.
// The worker uses these notifications to refresh mirrored calendar
// entries without polling aggressively.
type ChangePublisher interface {
	PublishChange(ctx context.Context, entity, entityID, action string) error
}

// NopPublisher drops every notification. Used when AMQP is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishChange(context.Context, string, string, string) error { return nil }
