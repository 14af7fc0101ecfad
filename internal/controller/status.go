package controller

import (
	"fmt"
	"os"
	"strings"

	"focus/internal/paths"
)

// StatusEntry describes one cached summary for reporting.
type StatusEntry struct {
	RelPath     string  `json:"relPath"`
	SummarySize int     `json:"summarySize"`
	FullSize    int     `json:"fullSize"`
	Savings     int     `json:"savings"`
	SavingsPct  float64 `json:"savingsPct"`
}

// Status aggregates the whole context state.
type Status struct {
	ActiveFile      string        `json:"activeFile,omitempty"`
	ActiveSize      int           `json:"activeSize"`
	ActiveMissing   bool          `json:"activeMissing,omitempty"`
	Entries         []StatusEntry `json:"entries"`
	ContextSize     int           `json:"contextSize"`
	UncompactedSize int           `json:"uncompactedSize"`
	Savings         int           `json:"savings"`
	SavingsPct      float64       `json:"savingsPct"`
}

// Status reports the active file, every cached summary, and aggregate
// savings. The active file's size is read on demand; if it vanished from
// disk it is reported as missing rather than failing the whole report.
func (c *Controller) Status() *Status {
	st := &Status{}

	if active := c.cache.ActiveFile(); active != "" {
		st.ActiveFile = paths.Display(active, c.root)
		if info, err := os.Stat(active); err == nil {
			st.ActiveSize = int(info.Size())
		} else {
			st.ActiveMissing = true
		}
	}

	for _, e := range c.cache.Entries() {
		entry := StatusEntry{
			RelPath:     e.RelPath,
			SummarySize: e.Cached.SummarySize,
			FullSize:    e.Cached.FullSize,
			Savings:     e.Cached.FullSize - e.Cached.SummarySize,
		}
		if e.Cached.FullSize > 0 {
			entry.SavingsPct = 100 * float64(entry.Savings) / float64(e.Cached.FullSize)
		}
		st.Entries = append(st.Entries, entry)

		// The active file's shadowed entry does not double-count: its
		// full size already stands in the active total.
		if e.Path == c.cache.ActiveFile() {
			continue
		}
		st.ContextSize += entry.SummarySize
		st.UncompactedSize += entry.FullSize
	}

	st.ContextSize += st.ActiveSize
	st.UncompactedSize += st.ActiveSize
	st.Savings = st.UncompactedSize - st.ContextSize
	if st.UncompactedSize > 0 {
		st.SavingsPct = 100 * float64(st.Savings) / float64(st.UncompactedSize)
	}
	return st
}

// Format renders the status as the human-readable report.
func (s *Status) Format() string {
	var b strings.Builder

	switch {
	case s.ActiveFile == "":
		b.WriteString("Active file: none\n")
	case s.ActiveMissing:
		fmt.Fprintf(&b, "Active file: %s (not found)\n", s.ActiveFile)
	default:
		fmt.Fprintf(&b, "Active file: %s (%d bytes)\n", s.ActiveFile, s.ActiveSize)
	}

	if len(s.Entries) > 0 {
		b.WriteString("\nCached summaries:\n")
		fmt.Fprintf(&b, "  %-50s %10s %10s %9s\n", "FILE", "SUMMARY", "ORIGINAL", "SAVED")
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "  %-50s %10d %10d %8.1f%%\n",
				e.RelPath, e.SummarySize, e.FullSize, e.SavingsPct)
		}
	} else {
		b.WriteString("\nNo cached summaries.\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total context size:      %d bytes\n", s.ContextSize)
	fmt.Fprintf(&b, "Size without compaction: %d bytes\n", s.UncompactedSize)
	fmt.Fprintf(&b, "Savings:                 %d bytes (%.1f%%)\n", s.Savings, s.SavingsPct)
	return b.String()
}
