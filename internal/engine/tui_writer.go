package engine

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"seawatch/internal/marine"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// boardMsg replaces the threat board with one cycle's assessments.
type boardMsg struct{ rows []marine.ThreatRow }

// eventMsg carries a formation or prediction log line.
type eventMsg struct{ line string }

// sightingCountMsg updates the vessel counter in the footer.
type sightingCountMsg struct{ count int }

const maxEventLines = 1000

var tuiLevelStyles = map[string]lipgloss.Style{
	string(marine.LevelLow):     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	string(marine.LevelMedium):  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	string(marine.LevelHigh):    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	string(marine.LevelExtreme): lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

// TUIWriter renders a live threat board using a bubbletea TUI. The
// board shows the latest cycle's assessments sorted by score; formations
// and predictions scroll through an event log below it.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteThreat queues a single assessment; the board updates on the next
// batch call or immediately for standalone rows.
func (w *TUIWriter) WriteThreat(row marine.ThreatRow) error {
	return w.WriteThreats([]marine.ThreatRow{row})
}

// WriteThreats replaces the threat board with the given cycle batch.
func (w *TUIWriter) WriteThreats(rows []marine.ThreatRow) error {
	sorted := make([]marine.ThreatRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score > sorted[j].Score })
	w.program.Send(boardMsg{rows: sorted})
	return nil
}

// WriteFormation appends a formation line to the event log.
func (w *TUIWriter) WriteFormation(row marine.FormationRow) error {
	line := fmt.Sprintf("[%s] FORMATION %s country=%s members=%d center=%.2f,%.2f radius=%.0fkm",
		row.Timestamp.UTC().Format("15:04:05"), row.Type, row.Country,
		len(row.MemberIDs), row.CenterLat, row.CenterLon, row.RadiusKm)
	w.program.Send(eventMsg{line: line})
	return nil
}

// WriteFormations appends multiple formation lines.
func (w *TUIWriter) WriteFormations(rows []marine.FormationRow) error {
	for _, r := range rows {
		_ = w.WriteFormation(r)
	}
	return nil
}

// WritePrediction appends a prediction line to the event log.
func (w *TUIWriter) WritePrediction(row marine.PredictionRow) error {
	line := fmt.Sprintf("[%s] PREDICT %s -> %.2f,%.2f conf=%.2f",
		row.Timestamp.UTC().Format("15:04:05"), row.VesselID,
		row.Lat, row.Lon, row.Confidence)
	w.program.Send(eventMsg{line: line})
	return nil
}

// WritePredictions appends multiple prediction lines.
func (w *TUIWriter) WritePredictions(rows []marine.PredictionRow) error {
	for _, r := range rows {
		_ = w.WritePrediction(r)
	}
	return nil
}

// WriteSighting updates the footer counter.
func (w *TUIWriter) WriteSighting(row marine.SightingRow) error {
	return w.WriteSightings([]marine.SightingRow{row})
}

// WriteSightings updates the footer counter with the cycle batch size.
func (w *TUIWriter) WriteSightings(rows []marine.SightingRow) error {
	w.program.Send(sightingCountMsg{count: len(rows)})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	board      table.Model
	vp         viewport.Model
	events     []string
	vessels    int
	cycles     int
	wrap       bool
	autoscroll bool
	help       bool
	height     int
}

func newTUIModel() tuiModel {
	cols := []table.Column{
		{Title: "Vessel", Width: 24},
		{Title: "Score", Width: 6},
		{Title: "Level", Width: 8},
		{Title: "Reasoning", Width: 60},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(10))
	return tuiModel{
		board:      t,
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.board.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
			return m, nil
		case "h", "?":
			m.help = true
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
			case "pgdown":
				m.vp.LineDown(10)
			case "pgup":
				m.vp.LineUp(10)
			}
		}
		return m, nil
	case boardMsg:
		rows := make([]table.Row, 0, len(msg.rows))
		for _, r := range msg.rows {
			level := tuiLevelStyles[r.Level].Render(strings.ToUpper(r.Level))
			rows = append(rows, table.Row{
				r.VesselID,
				fmt.Sprintf("%d", r.Score),
				level,
				strings.Join(r.Reasoning, "; "),
			})
		}
		m.board.SetRows(rows)
		m.cycles++
	case eventMsg:
		m.events = append(m.events, msg.line)
		if len(m.events) > maxEventLines {
			m.events = m.events[len(m.events)-maxEventLines:]
		}
		m.refreshViewport()
	case sightingCountMsg:
		m.vessels = msg.count
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - m.board.Height() - 4
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.events {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	footer := fmt.Sprintf("vessels=%d cycles=%d | q quit | s scroll | w wrap | ? help",
		m.vessels, m.cycles)
	sections := []string{
		m.board.View(),
		divider,
		m.vp.View(),
		divider,
		footer,
	}
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" s  toggle auto-scroll",
		" w  toggle wrap for event log",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
