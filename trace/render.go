package trace

import (
	"fmt"
	"io"
	"strings"
)

// Render writes the recording as a fixed-width timeline, one row per
// snapshot, suitable for terminals and for golden files. Rows carry no
// trailing spaces, so the output is stable under editors that strip
// them.
func (rec Recording) Render(w io.Writer) error {
	if rec.Len() == 0 {
		_, err := fmt.Fprintln(w, "(no snapshots)")
		return err
	}

	var row strings.Builder
	fmt.Fprintf(&row, "%10s", "t")
	for i := range len(rec.Get(0).States) {
		fmt.Fprintf(&row, "  %-8s", fmt.Sprintf("P%d", i))
	}
	if err := writeRow(w, &row); err != nil {
		return err
	}

	var err error
	rec.Range(func(s Snapshot) bool {
		fmt.Fprintf(&row, "%10v", s.At)
		for _, st := range s.States {
			fmt.Fprintf(&row, "  %-8s", st)
		}
		err = writeRow(w, &row)
		return err == nil
	})
	return err
}

// writeRow flushes the builder as one line, trimmed of padding.
func writeRow(w io.Writer, row *strings.Builder) error {
	_, err := fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	row.Reset()
	return err
}
