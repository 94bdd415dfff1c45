package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"phodata/internal/domain"
)

func newTestModel() Model {
	return NewModel(Config{Root: "/photos", Output: "/out/photos.csv", Format: domain.FormatCSV})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return model
}

func TestModelPhases(t *testing.T) {
	m := newTestModel()
	if m.Phase != PhaseCounting {
		t.Fatalf("expected counting phase, got %d", m.Phase)
	}
	if !strings.Contains(m.View(), "Looking for photos") {
		t.Fatalf("expected counting view, got %q", m.View())
	}

	m = update(t, m, CountedMsg{Total: 4})
	if m.Phase != PhaseExporting {
		t.Fatalf("expected exporting phase, got %d", m.Phase)
	}

	m = update(t, m, ExportProgressMsg{Done: 1, Total: 4, File: "IMG_0001.jpg"})
	view := m.View()
	if !strings.Contains(view, "1/4 photos") || !strings.Contains(view, "IMG_0001.jpg") {
		t.Fatalf("expected progress in view, got %q", view)
	}

	m = update(t, m, ExportDoneMsg{Summary: domain.ExportSummary{
		Written: 3,
		WithGPS: 1,
		Elapsed: 1500 * time.Millisecond,
		Skipped: []domain.SkippedFile{{Path: "/photos/broken.jpg", Reason: "EOF"}},
	}})
	if m.Phase != PhaseDone || !m.Finished() {
		t.Fatalf("expected done phase, got %d", m.Phase)
	}
	view = m.View()
	if !strings.Contains(view, "Export Complete") || !strings.Contains(view, "broken.jpg") {
		t.Fatalf("expected completion view, got %q", view)
	}
}

func TestModelError(t *testing.T) {
	m := update(t, newTestModel(), ErrorMsg{Err: errors.New("decode failed")})
	if m.Phase != PhaseError || !m.Finished() {
		t.Fatalf("expected error phase, got %d", m.Phase)
	}
	if !strings.Contains(m.View(), "decode failed") {
		t.Fatalf("expected error in view, got %q", m.View())
	}
}

func TestModelQuit(t *testing.T) {
	next, cmd := newTestModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m := next.(Model)
	if !m.Quitting || cmd == nil {
		t.Fatalf("expected quit, got quitting=%v cmd=%v", m.Quitting, cmd)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
}

func TestEnterOnlyExitsWhenFinished(t *testing.T) {
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	_, cmd := newTestModel().Update(enter)
	if cmd != nil {
		t.Fatalf("enter should not quit while exporting")
	}

	done := update(t, newTestModel(), ExportDoneMsg{})
	if _, cmd := done.Update(enter); cmd == nil {
		t.Fatalf("enter should quit once finished")
	}
}
