package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/meshhealth/health-client-go/pkg/log"
	"github.com/meshhealth/health-client-go/pkg/uart"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	FramesByCommand   map[uint8]int
	MessagesByOpcode  map[uint32]int
	Unhandled         int
	Sessions          map[string]*SessionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for one modem link session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Port      string
}

// Collect reads the capture at path and aggregates it.
func Collect(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		FramesByCommand:   make(map[uint8]int),
		MessagesByOpcode:  make(map[uint32]int),
		Sessions:          make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}
	return stats, nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	session, ok := s.Sessions[event.SessionID]
	if !ok {
		session = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = session
	}
	session.Events++
	if event.Timestamp.After(session.LastSeen) {
		session.LastSeen = event.Timestamp
	}
	if session.Port == "" {
		session.Port = event.Port
	}

	switch {
	case event.Frame != nil:
		s.FramesByCommand[event.Frame.Command]++
	case event.Message != nil:
		s.MessagesByOpcode[event.Message.Opcode]++
		if event.Message.Handled != nil && !*event.Message.Handled {
			s.Unhandled++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats analyzes the capture and prints statistics.
func RunStats(path string, w io.Writer) error {
	stats, err := Collect(path)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Health Client Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration: %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	fmt.Fprintf(w, "Unhandled Messages: %d\n", stats.Unhandled)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By Layer:")
	for _, l := range []log.Layer{log.LayerTransport, log.LayerWire, log.LayerService} {
		fmt.Fprintf(w, "  %-10s %d\n", l, stats.EventsByLayer[l])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "By Direction:")
	fmt.Fprintf(w, "  %-10s %d\n", log.DirectionIn, stats.EventsByDirection[log.DirectionIn])
	fmt.Fprintf(w, "  %-10s %d\n", log.DirectionOut, stats.EventsByDirection[log.DirectionOut])
	fmt.Fprintln(w)

	if len(stats.FramesByCommand) > 0 {
		fmt.Fprintln(w, "Frames:")
		cmds := make([]int, 0, len(stats.FramesByCommand))
		for c := range stats.FramesByCommand {
			cmds = append(cmds, int(c))
		}
		sort.Ints(cmds)
		for _, c := range cmds {
			fmt.Fprintf(w, "  %-32s %d\n", uart.Command(c), stats.FramesByCommand[uint8(c)])
		}
		fmt.Fprintln(w)
	}

	if len(stats.MessagesByOpcode) > 0 {
		fmt.Fprintln(w, "Mesh Messages:")
		ops := make([]uint32, 0, len(stats.MessagesByOpcode))
		for op := range stats.MessagesByOpcode {
			ops = append(ops, op)
		}
		sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
		for _, op := range ops {
			fmt.Fprintf(w, "  %-32s %d\n", OpcodeName(op), stats.MessagesByOpcode[op])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := stats.Sessions[id]
		fmt.Fprintf(w, "  %s: %d events", shortenSessionID(id), s.Events)
		if s.Port != "" {
			fmt.Fprintf(w, " on %s", s.Port)
		}
		fmt.Fprintln(w)
	}
}
