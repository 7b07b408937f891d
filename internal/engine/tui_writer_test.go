package engine

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"seawatch/internal/marine"
)

type fakeProgram struct{ msgs []tea.Msg }

func (f *fakeProgram) Send(msg tea.Msg) { f.msgs = append(f.msgs, msg) }

func TestTUIWriterMessages(t *testing.T) {
	p := &fakeProgram{}
	w := &TUIWriter{program: p}

	rows := []marine.ThreatRow{
		{VesselID: "v1", Score: 20, Level: string(marine.LevelLow)},
		{VesselID: "v2", Score: 80, Level: string(marine.LevelExtreme)},
	}
	if err := w.WriteThreats(rows); err != nil {
		t.Fatalf("threats: %v", err)
	}
	bm, ok := p.msgs[0].(boardMsg)
	if !ok {
		t.Fatalf("expected boardMsg, got %T", p.msgs[0])
	}
	if bm.rows[0].VesselID != "v2" {
		t.Fatalf("board not sorted by score, first = %s", bm.rows[0].VesselID)
	}

	f := marine.FormationRow{FormationID: "f1", Type: string(marine.FormationConvoy),
		Country: "CN", MemberIDs: []string{"v1", "v2"}, Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WriteFormation(f); err != nil {
		t.Fatalf("formation: %v", err)
	}
	if _, ok := p.msgs[1].(eventMsg); !ok {
		t.Fatalf("expected eventMsg for formation, got %T", p.msgs[1])
	}

	pr := marine.PredictionRow{VesselID: "v1", Lat: 1, Lon: 2, Confidence: 0.8,
		Timestamp: time.Unix(0, 0).UTC()}
	if err := w.WritePrediction(pr); err != nil {
		t.Fatalf("prediction: %v", err)
	}
	if _, ok := p.msgs[2].(eventMsg); !ok {
		t.Fatalf("expected eventMsg for prediction, got %T", p.msgs[2])
	}

	if err := w.WriteSightings([]marine.SightingRow{{VesselID: "v1"}}); err != nil {
		t.Fatalf("sightings: %v", err)
	}
	sm, ok := p.msgs[3].(sightingCountMsg)
	if !ok {
		t.Fatalf("expected sightingCountMsg, got %T", p.msgs[3])
	}
	if sm.count != 1 {
		t.Fatalf("count = %d, want 1", sm.count)
	}
}

func TestTUIModelBoardAndEvents(t *testing.T) {
	m := newTUIModel()
	mi, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	m = mi.(tuiModel)

	mi, _ = m.Update(boardMsg{rows: []marine.ThreatRow{
		{VesselID: "v1", Score: 55, Level: string(marine.LevelHigh),
			Reasoning: []string{"carrier-class vessel (+30)"}},
	}})
	m = mi.(tuiModel)
	if m.cycles != 1 {
		t.Fatalf("cycles = %d, want 1", m.cycles)
	}
	if got := len(m.board.Rows()); got != 1 {
		t.Fatalf("board rows = %d, want 1", got)
	}

	mi, _ = m.Update(eventMsg{line: "l1"})
	m = mi.(tuiModel)
	mi, _ = m.Update(eventMsg{line: "l2"})
	m = mi.(tuiModel)
	if len(m.events) != 2 {
		t.Fatalf("events = %d, want 2", len(m.events))
	}

	mi, _ = m.Update(sightingCountMsg{count: 7})
	m = mi.(tuiModel)
	if m.vessels != 7 {
		t.Fatalf("vessels = %d, want 7", m.vessels)
	}
}

func TestTUIModelScrollToggle(t *testing.T) {
	m := newTUIModel()
	m.vp.Height = 1
	m.vp.Width = 20
	mi, _ := m.Update(eventMsg{line: "l1"})
	m = mi.(tuiModel)
	mi, _ = m.Update(eventMsg{line: "l2"})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset 1, got %d", m.vp.YOffset)
	}
	mi, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = mi.(tuiModel)
	if m.autoscroll {
		t.Fatalf("autoscroll should be off")
	}
	mi, _ = m.Update(eventMsg{line: "l3"})
	m = mi.(tuiModel)
	if m.vp.YOffset != 1 {
		t.Fatalf("expected YOffset unchanged, got %d", m.vp.YOffset)
	}
}
