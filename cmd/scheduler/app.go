package main

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squad-scheduler/internal/config"
	"github.com/mauv0809/squad-scheduler/internal/metrics"
	"github.com/mauv0809/squad-scheduler/internal/notifier/slack"
	"github.com/mauv0809/squad-scheduler/internal/pubsub"
	"github.com/mauv0809/squad-scheduler/internal/roster"
	"github.com/mauv0809/squad-scheduler/internal/scheduler"
	"github.com/mauv0809/squad-scheduler/internal/share"
	"github.com/mauv0809/squad-scheduler/internal/storage"
)

// app holds the wired dependencies shared by every command.
type app struct {
	metrics      *metrics.Service
	metricsStore metrics.MetricsStore
	roster       roster.Store
	scheduler    *scheduler.Scheduler
	teardown     []func()
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	a := &app{}

	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}
	a.teardown = append(a.teardown, func() {
		log.Debug("Closing storage")
		closeStore()
	})

	a.metrics = metrics.NewService()
	if sqliteStore, ok := store.(*storage.SQLiteStore); ok {
		a.metricsStore = metrics.New(sqliteStore.DB())
		a.metrics.WithStore(a.metricsStore)
	}

	a.roster, err = roster.New(store, roster.WithChangeHook(a.metrics.IncRosterChange))
	if err != nil {
		a.Close()
		return nil, err
	}

	sharers, err := a.sharers(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	var sharer share.Sharer
	if len(sharers) > 0 {
		sharer = scheduler.NewSharer(a.metrics, sharers...)
	}
	a.scheduler = scheduler.New(a.roster, sharer, a.metrics)
	return a, nil
}

// sharers builds the share targets enabled by cfg.
func (a *app) sharers(ctx context.Context, cfg config.Config) ([]share.Sharer, error) {
	var sharers []share.Sharer
	if cfg.OpenBrowser {
		sharers = append(sharers, share.NewBrowserOpener())
	}
	if cfg.SlackEnabled() {
		sharers = append(sharers, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID))
	}
	if cfg.PubSubEnabled() {
		client, err := pubsub.New(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return nil, err
		}
		a.teardown = append(a.teardown, func() { client.Close() })
		sharers = append(sharers, pubsub.NewSharer(client, cfg.PubSub.Topic))
	}
	names := make([]string, 0, len(sharers))
	for _, s := range sharers {
		names = append(names, s.Name())
	}
	log.Debug("Share targets configured", "sharers", names)
	return sharers, nil
}

// Close releases everything newApp opened, newest first.
func (a *app) Close() {
	for i := len(a.teardown) - 1; i >= 0; i-- {
		a.teardown[i]()
	}
}
