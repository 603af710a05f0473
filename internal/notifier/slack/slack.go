package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/share"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ share.Sharer = &Notifier{}

// Notifier posts scheduling messages to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

func (s *Notifier) Name() string { return "slack" }

// Share posts the message to the configured channel.
func (s *Notifier) Share(ctx context.Context, shared share.Shared, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, FormatScheduleMessage(shared), dryRun)
	return err
}

// FormatScheduleMessage builds the Block Kit message for a shared
// scheduling message: a header, the message verbatim and the WhatsApp link.
func FormatScheduleMessage(shared share.Shared) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	header := "🎮 Agendamento"
	if shared.OpponentName != "" {
		header = fmt.Sprintf("🎮 Agendamento vs %s", shared.OpponentName)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", shared.Message, false, false), nil, nil))

	if digits := share.Digits(shared.Phone); digits != "" {
		link := share.WhatsAppLink(shared.Phone, shared.Message)
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("<%s|Abrir no WhatsApp>", link), false, false),
		))
	}

	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}
