package share

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/log"
)

// BrowserOpener opens the WhatsApp link with the desktop's default handler.
type BrowserOpener struct {
	// run is swapped in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// NewBrowserOpener creates an opener that shells out to the platform
// URL handler.
func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{run: func(ctx context.Context, name string, args ...string) error {
		return exec.CommandContext(ctx, name, args...).Start()
	}}
}

func (b *BrowserOpener) Name() string { return "browser" }

func (b *BrowserOpener) Share(ctx context.Context, s Shared, dryRun bool) error {
	link := WhatsAppLink(s.Phone, s.Message)
	if dryRun {
		log.Info("[Dry Run] Would open link", "link", link)
		return nil
	}
	name, args := openCommand(runtime.GOOS, link)
	if err := b.run(ctx, name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", link, err)
	}
	return nil
}

func openCommand(goos, link string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
