package tmux

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/renato0307/cc-orchestrator/internal/ports"
)

func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func parseUnix(field string) time.Time {
	secs, err := strconv.ParseInt(field, 10, 64)
	if err != nil || secs == 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

// parseSessionLine parses one line of sessionFormat
func parseSessionLine(line string) (ports.TmuxSession, error) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) != 5 {
		return ports.TmuxSession{}, fmt.Errorf("unexpected session line %q", line)
	}

	attached, err := strconv.Atoi(fields[3])
	if err != nil {
		return ports.TmuxSession{}, fmt.Errorf("invalid attached count in %q: %w", line, err)
	}

	return ports.TmuxSession{
		Activity:        parseUnix(fields[2]),
		AttachedClients: attached,
		CreatedAt:       parseUnix(fields[1]),
		Name:            fields[0],
		Path:            fields[4],
	}, nil
}

// parseWindowLine parses one line of windowFormat. Window names may be empty.
func parseWindowLine(line string) (ports.TmuxWindow, error) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) != 5 {
		return ports.TmuxWindow{}, fmt.Errorf("unexpected window line %q", line)
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return ports.TmuxWindow{}, fmt.Errorf("invalid window index in %q: %w", line, err)
	}

	return ports.TmuxWindow{
		Active: fields[3] == "1",
		ID:     fields[0],
		Index:  index,
		Name:   fields[2],
		PaneID: fields[4],
	}, nil
}

// parsePaneLine parses one line of paneFormat
func parsePaneLine(line string) (ports.TmuxPane, error) {
	fields := strings.SplitN(line, "\t", 2)
	if len(fields) != 2 {
		return ports.TmuxPane{}, fmt.Errorf("unexpected pane line %q", line)
	}

	index, err := strconv.Atoi(fields[1])
	if err != nil {
		return ports.TmuxPane{}, fmt.Errorf("invalid pane index in %q: %w", line, err)
	}

	return ports.TmuxPane{ID: fields[0], Index: index}, nil
}
