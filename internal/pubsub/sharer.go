package pubsub

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/share"
)

var _ share.Sharer = (*Sharer)(nil)

// NewSharer publishes share events to topic through client.
func NewSharer(client PubSubClient, topic string) *Sharer {
	return &Sharer{client: client, topic: topic}
}

func (s *Sharer) Name() string { return "pubsub" }

func (s *Sharer) Share(ctx context.Context, shared share.Shared, dryRun bool) error {
	event := share.NewEvent(shared)
	if dryRun {
		log.Info("[Dry Run] Would publish share event", "topic", s.topic, "id", event.ID)
		return nil
	}
	return s.client.SendMessage(ctx, s.topic, event)
}
