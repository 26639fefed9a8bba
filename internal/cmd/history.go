package cmd

import (
	"context"
	"fmt"

	"github.com/renato0307/cc-orchestrator/internal/domain"
	"github.com/renato0307/cc-orchestrator/internal/ui"
)

// HistoryCmd shows journaled session events
type HistoryCmd struct {
	Format   string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Instance string `help:"Only events of sessions owned by this instance id" short:"i"`
	Limit    int    `help:"Maximum number of events (0 = all)" default:"50" short:"n"`
	Session  string `help:"Only events of this session" short:"s"`
	Type     string `help:"Only events of this type (attached, create_failed, created, destroyed, detached, orphan_detected)"`
}

// Run executes the history command
func (h *HistoryCmd) Run(container *Container) error {
	if h.Type != "" && !domain.ValidEventType(domain.SessionEventType(h.Type)) {
		return fmt.Errorf("unknown event type: %s", h.Type)
	}

	events, err := container.SessionService.History(context.Background(), domain.EventFilter{
		InstanceID:  h.Instance,
		Limit:       h.Limit,
		SessionName: h.Session,
		Type:        domain.SessionEventType(h.Type),
	})
	if err != nil {
		return err
	}

	if h.Format == "json" {
		return printJSON(container.Stdout, events)
	}

	if len(events) == 0 {
		fmt.Fprintln(container.Stdout, "No events")
		return nil
	}
	fmt.Fprintln(container.Stdout, ui.EventsTable(events))
	return nil
}
