package repl

import (
	"errors"
	"slices"
	"testing"
)

func TestHistory_WriteWithMode(t *testing.T) {
	h := NewHistory()

	writes := []struct {
		line string
		mode inputMode
		want int
	}{
		{"lower(a)", modeEval, 1},
		{"vars", modeCtrl, 2},
		{"  ", modeEval, 2},
		{"upper(b)", modeEval, 3},
		{" lower(a) ", modeEval, 3},
		{"lower(a)", modeCtrl, 4},
	}

	for _, w := range writes {
		if got := h.WriteWithMode(w.line, w.mode); got != w.want {
			t.Errorf("write %q: expected %d entries, got %d", w.line, w.want, got)
		}
	}

	want := []HistoryEntry{
		{Line: "vars", Mode: modeCtrl},
		{Line: "upper(b)", Mode: modeEval},
		{Line: "lower(a)", Mode: modeEval},
		{Line: "lower(a)", Mode: modeCtrl},
	}

	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestHistory_GetEntry(t *testing.T) {
	h := NewHistory()
	h.Write("lower(a)")

	entry, err := h.GetEntry(0)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	if entry.Line != "lower(a)" || entry.Mode != modeEval {
		t.Errorf("expected eval entry lower(a), got %+v", entry)
	}

	for _, i := range []int{-1, 1} {
		if _, err := h.GetEntry(i); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("index %d: expected ErrOutOfBounds, got %v", i, err)
		}
	}
}

func TestModel_HistoryStep(t *testing.T) {
	m := testModel(t, nil)
	m.history.WriteWithMode("lower(a)", modeEval)
	m.history.WriteWithMode("vars", modeCtrl)
	m.history.WriteWithMode("upper(b)", modeEval)
	m.historyIdx = m.history.Len()

	steps := []struct {
		dir    int
		inMode bool
		line   string
		mode   inputMode
	}{
		{-1, false, "upper(b)", modeEval},
		{-1, false, "vars", modeCtrl},
		{-1, false, "lower(a)", modeEval},
		{-1, false, "lower(a)", modeEval},
		{1, true, "upper(b)", modeEval},
		{1, false, "", modeEval},
	}

	for i, s := range steps {
		m = m.historyStep(s.dir, s.inMode)

		if got := m.input.Value(); got != s.line {
			t.Errorf("step %d: expected input %q, got %q", i, s.line, got)
		}

		if m.mode != s.mode {
			t.Errorf("step %d: expected mode %d, got %d", i, s.mode, m.mode)
		}
	}
}
