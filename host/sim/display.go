package sim

import (
	"io"
	"strings"
	"sync"
)

// displayRows matches the 128x32 panel
const displayRows = 3

// TerminalDisplay is a text-mode status display. It implements
// core.FlushingDisplay: rows are buffered and written to the terminal on
// Flush, one "[LCD]" line per non-empty row.
type TerminalDisplay struct {
	mu      sync.Mutex
	w       io.Writer
	rows    [displayRows]string
	flushes int
}

// NewTerminalDisplay creates a display writing to w; nil discards output
func NewTerminalDisplay(w io.Writer) *TerminalDisplay {
	if w == nil {
		w = io.Discard
	}
	return &TerminalDisplay{w: w}
}

func (d *TerminalDisplay) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = [displayRows]string{}
}

// WriteText places text at row, col. Writes outside the panel are clipped.
func (d *TerminalDisplay) WriteText(row, col int, text string) {
	if row < 0 || row >= displayRows || col < 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	line := d.rows[row]
	if len(line) < col {
		line += strings.Repeat(" ", col-len(line))
	}
	end := col + len(text)
	if end < len(line) {
		d.rows[row] = line[:col] + text + line[end:]
	} else {
		d.rows[row] = line[:col] + text
	}
}

func (d *TerminalDisplay) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.flushes++
	var b strings.Builder
	for _, row := range d.rows {
		if row == "" {
			continue
		}
		b.WriteString("[LCD] ")
		b.WriteString(row)
		b.WriteByte('\n')
	}
	_, _ = io.WriteString(d.w, b.String())
}

// Rows returns the buffered rows
func (d *TerminalDisplay) Rows() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, displayRows)
	copy(out, d.rows[:])
	return out
}

// Flushes returns how many times the display was flushed
func (d *TerminalDisplay) Flushes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushes
}
