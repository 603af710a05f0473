package share

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const whatsAppBase = "https://wa.me/"

// Shared is a composed message ready to be handed to a share target.
type Shared struct {
	Message      string
	Phone        string
	Championship string
	OpponentName string
}

// Event is the record published for every share.
type Event struct {
	ID           string    `msgpack:"id" json:"id"`
	Phone        string    `msgpack:"phone" json:"phone"`
	Link         string    `msgpack:"link" json:"link"`
	Message      string    `msgpack:"message" json:"message"`
	Championship string    `msgpack:"championship" json:"championship"`
	Opponent     string    `msgpack:"opponent" json:"opponent"`
	CreatedAt    time.Time `msgpack:"created_at" json:"created_at"`
}

// NewEvent builds the Event for s with a fresh id.
func NewEvent(s Shared) Event {
	return Event{
		ID:           uuid.New().String(),
		Phone:        Digits(s.Phone),
		Link:         WhatsAppLink(s.Phone, s.Message),
		Message:      s.Message,
		Championship: s.Championship,
		Opponent:     s.OpponentName,
		CreatedAt:    time.Now().UTC(),
	}
}

// Sharer hands a composed message to one outbound channel.
type Sharer interface {
	Name() string
	Share(ctx context.Context, s Shared, dryRun bool) error
}

// Digits strips every character of phone that is not an ASCII digit.
func Digits(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeText percent-encodes message for use as a query value. Spaces
// become %20 so the text survives apps that do not decode '+'.
func EncodeText(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// WhatsAppLink builds the wa.me deep link that opens a chat with phone
// and message prefilled.
func WhatsAppLink(phone, message string) string {
	return whatsAppBase + Digits(phone) + "?text=" + EncodeText(message)
}

// Multi fans a share out to every sharer. Failures do not stop the
// remaining sharers; all errors are joined.
type Multi struct {
	Sharers []Sharer
	// OnResult, when set, is called once per sharer with its outcome.
	OnResult func(name string, err error)
}

func (m Multi) Name() string { return "multi" }

func (m Multi) Share(ctx context.Context, s Shared, dryRun bool) error {
	var errs []error
	for _, sh := range m.Sharers {
		err := sh.Share(ctx, s, dryRun)
		if m.OnResult != nil {
			m.OnResult(sh.Name(), err)
		}
		if err != nil {
			log.Error("Share failed", "sharer", sh.Name(), "error", err)
			errs = append(errs, err)
			continue
		}
		log.Info("Shared message", "sharer", sh.Name(), "dryRun", dryRun)
	}
	return errors.Join(errs...)
}
