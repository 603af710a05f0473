package slack

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mauv0809/squad-scheduler/internal/share"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

var shared = share.Shared{
	Message:      "🎮 AGENDAMENTO OFICIAL DE PARTIDA – Série E",
	Phone:        "(85) 99999-0001",
	Championship: "Série E",
	OpponentName: "João Silva",
}

func TestShare_DryRun(t *testing.T) {
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123")
	require.NoError(t, notifier.Share(context.Background(), shared, true))
}

func TestShare_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "posting must be bounded by a timeout")
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123")
	require.NoError(t, notifier.Share(context.Background(), shared, false))
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

func TestShare_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	err := NewNotifierWithAPI(api, "C123").Share(context.Background(), shared, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
}

func TestFormatScheduleMessage(t *testing.T) {
	msg := FormatScheduleMessage(shared)
	require.Len(t, msg.Blocks.BlockSet, 3)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🎮 Agendamento vs João Silva", header.Text.Text)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, shared.Message, section.Text.Text)

	ctxBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	link, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link.Text, "<https://wa.me/85999990001?text="))
}

func TestFormatScheduleMessage_NoPhone(t *testing.T) {
	msg := FormatScheduleMessage(share.Shared{Message: "x"})
	assert.Len(t, msg.Blocks.BlockSet, 2, "no link without a phone number")
}
