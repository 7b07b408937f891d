// ColorStdoutWriter prints a human-friendly, colorized threat board.
package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"seawatch/internal/marine"
)

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorPurple = "\x1b[35m"
	colorGray   = "\x1b[90m"
)

var levelColors = map[string]string{
	string(marine.LevelLow):     colorGreen,
	string(marine.LevelMedium):  colorYellow,
	string(marine.LevelHigh):    colorRed,
	string(marine.LevelExtreme): colorPurple,
}

// ColorStdoutWriter prints threat rows using ANSI colors. Colors are
// suppressed when STDOUT is not a terminal.
type ColorStdoutWriter struct {
	out   io.Writer
	color bool
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter() *ColorStdoutWriter {
	return &ColorStdoutWriter{
		out:   os.Stdout,
		color: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (w *ColorStdoutWriter) paint(color, s string) string {
	if !w.color {
		return s
	}
	return color + s + colorReset
}

// WriteThreat prints one assessment line.
func (w *ColorStdoutWriter) WriteThreat(row marine.ThreatRow) error {
	return w.WriteThreats([]marine.ThreatRow{row})
}

// WriteThreats prints an aligned board of assessments.
func (w *ColorStdoutWriter) WriteThreats(rows []marine.ThreatRow) error {
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		level := w.paint(levelColors[r.Level], strings.ToUpper(r.Level))
		reason := ""
		if len(r.Reasoning) > 0 {
			reason = w.paint(colorGray, strings.Join(r.Reasoning, "; "))
		}
		fmt.Fprintf(tw, "%s\t%3d\t%s\t%s\n", r.VesselID, r.Score, level, reason)
	}
	return tw.Flush()
}

// WriteFormation prints one formation line.
func (w *ColorStdoutWriter) WriteFormation(row marine.FormationRow) error {
	fmt.Fprintf(w.out, "%s %s: %d ships within %.0f km of %.2f,%.2f\n",
		w.paint(colorYellow, "[formation]"), row.Type,
		len(row.MemberIDs), row.RadiusKm, row.CenterLat, row.CenterLon)
	return nil
}

// WritePrediction prints one prediction line.
func (w *ColorStdoutWriter) WritePrediction(row marine.PredictionRow) error {
	fmt.Fprintf(w.out, "%s %s -> %.2f,%.2f (confidence %.2f)\n",
		w.paint(colorGray, "[predict]"), row.VesselID, row.Lat, row.Lon, row.Confidence)
	return nil
}
