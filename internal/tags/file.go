package tags

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

const headerTimeLayout = "02 Jan 2006 15:04:05"

// Read loads every group line from r and sorts the result. Invalid lines are
// logged and skipped; only read errors are returned.
func (m *Manager) Read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		_ = m.ReadLine(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read tag file: %w", err)
	}
	m.Sort()
	return nil
}

// Write serializes all non-empty groups in their current order.
func (m *Manager) Write(w io.Writer, now time.Time) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#TagList | %s\n\n", now.Format(headerTimeLayout))
	for _, g := range m.groups {
		if g.Len() == 0 {
			continue
		}
		fmt.Fprintf(bw, "name=%s:tags=%s\n", g.Name(), strings.Join(g.tags, "|"))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write tag file: %w", err)
	}
	return nil
}
