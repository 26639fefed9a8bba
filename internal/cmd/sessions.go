package cmd

import (
	"encoding/json"
	"fmt"
	"io"
)

// SessionsCmd manages sessions
type SessionsCmd struct {
	Adopt   SessionsAdoptCmd   `cmd:"adopt" help:"Start tracking an untracked session"`
	Attach  SessionsAttachCmd  `cmd:"attach" help:"Attach to a session"`
	Cleanup SessionsCleanupCmd `cmd:"cleanup" help:"Destroy every tracked session, or those of one instance"`
	Create  SessionsCreateCmd  `cmd:"create" aliases:"new" help:"Create a session from a layout template"`
	Destroy SessionsDestroyCmd `cmd:"destroy" aliases:"kill,rm" help:"Destroy a session"`
	Detach  SessionsDetachCmd  `cmd:"detach" help:"Detach every client from a session"`
	Info    SessionsInfoCmd    `cmd:"info" help:"Show one session"`
	List    SessionsListCmd    `cmd:"list" aliases:"ls" help:"List sessions" default:"1"`
	Orphans SessionsOrphansCmd `cmd:"orphans" help:"List orchestrator sessions that are not tracked"`
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
