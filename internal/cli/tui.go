package cli

import (
	"fmt"
	"os"
	"time"

	"emperror.dev/errors"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ghgrip/internal/config"
	"ghgrip/internal/eventbus"
	"ghgrip/internal/github"
	"ghgrip/internal/ui"
)

// ReadyEnvVar makes the TUI print ReadyMarker once it is about to start
const (
	ReadyEnvVar = "GHGRIP_E2E_TEST"
	ReadyMarker = "__READY__"
)

const saveWait = 2 * time.Second

// events the UI needs to see
var forwardedEvents = []eventbus.EventType{
	eventbus.EventViewerLoaded,
	eventbus.EventPageFetched,
	eventbus.EventPageFetchFailed,
	eventbus.EventRepoRenamed,
	eventbus.EventRenameFailed,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

func runTUI(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	bus := eventbus.NewWithLogger(a.log)
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(a.configSvc.Path(), bus)
	svc := github.NewService(a.client(ctx), bus, a.cfg.PageSize, a.cfg.Timeout(), a.log)
	defer svc.Close()

	model := ui.NewModel(bus, a.cfg, ui.WithLogger(a.log))
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// persist the last sort key on a normal quit
	saved := make(chan error, 1)
	base := *a.cfg
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			updated := base
			updated.Sort = event.Sort.String()
			saved <- configSvc.Save(&updated)
		}
	})

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, eventType := range forwardedEvents {
		bus.Subscribe(eventType, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			case <-done:
			default:
				a.log.WithField("event", e.Type()).Warn("event channel full, dropping event")
			}
		})
	}
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	if os.Getenv(ReadyEnvVar) == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), ReadyMarker)
	}

	a.log.Info("starting UI")
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "run program")
	}
	a.log.Info("UI exited normally")

	if model.SaveRequested() {
		select {
		case err := <-saved:
			if err != nil {
				a.log.WithError(err).Error("failed to save config")
			}
		case <-time.After(saveWait):
			a.log.Warn("timed out saving config")
		}
	}

	return nil
}
