package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/jivecut/internal/processor"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModelFileLifecycle(t *testing.T) {
	m := NewModel([]string{"/media/one.mp4", "/media/two.mp4"})
	if m.CurrentIndex != -1 || m.TotalFiles != 2 {
		t.Fatalf("NewModel: CurrentIndex=%d TotalFiles=%d", m.CurrentIndex, m.TotalFiles)
	}

	m, _ = update(t, m, FileStartMsg{FileIndex: 0, FileName: "/media/one.mp4"})
	if m.CurrentIndex != 0 || m.Files[0].Status != StatusAnalyzing {
		t.Fatalf("after FileStartMsg: index=%d status=%v", m.CurrentIndex, m.Files[0].Status)
	}

	m, _ = update(t, m, ProgressMsg{Pass: processor.PassDecoding, PassName: "Decoding", Progress: 0.5, Level: 0.3})
	m, _ = update(t, m, ProgressMsg{Pass: processor.PassSmoothing, PassName: "Smoothing", Progress: 1.0, Level: 0.2})
	fp := m.Files[0]
	if fp.CurrentPass != processor.PassSmoothing || fp.CurrentLevel != 0.2 || fp.PeakLevel != 0.3 {
		t.Fatalf("progress tracking: pass=%d level=%v peak=%v", fp.CurrentPass, fp.CurrentLevel, fp.PeakLevel)
	}

	m, _ = update(t, m, ProgressMsg{Pass: processor.PassCutting, PassName: "Cutting", Progress: 0})
	if m.Files[0].Status != StatusCutting {
		t.Fatalf("status during cut = %v, want StatusCutting", m.Files[0].Status)
	}

	m, _ = update(t, m, FileCompleteMsg{
		FileIndex:        0,
		Threshold:        0.02,
		Silences:         3,
		OriginalDuration: 120,
		EditedDuration:   90,
		OutputPath:       "finished/one-edited.mp4",
	})
	if m.Files[0].Status != StatusComplete || m.CompletedFiles != 1 || m.Files[0].Silences != 3 {
		t.Fatalf("after FileCompleteMsg: %+v", m.Files[0])
	}

	m, _ = update(t, m, FileStartMsg{FileIndex: 1, FileName: "/media/two.mp4"})
	m, _ = update(t, m, FileCompleteMsg{FileIndex: 1, Error: errors.New("ffmpeg: exit status 1")})
	if m.Files[1].Status != StatusError || m.FailedFiles != 1 {
		t.Fatalf("after failure: status=%v failed=%d", m.Files[1].Status, m.FailedFiles)
	}

	m, cmd := update(t, m, AllCompleteMsg{})
	if !m.Done || cmd == nil {
		t.Fatal("AllCompleteMsg should mark done and quit")
	}

	m.Width = 80
	view := m.View()
	for _, want := range []string{"Cutting Complete", "one.mp4", "Silences: 3", "2m00s → 1m30s", "1 cut, 1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("completion view missing %q:\n%s", want, view)
		}
	}
}

func TestModelIgnoresOutOfRangeMessages(t *testing.T) {
	m := NewModel([]string{"a.mp4"})

	m, _ = update(t, m, ProgressMsg{Pass: 1, Progress: 0.5})
	m, _ = update(t, m, FileStartMsg{FileIndex: 5})
	m, _ = update(t, m, FileCompleteMsg{FileIndex: -1})

	if m.CurrentIndex != -1 || m.CompletedFiles != 0 || m.Files[0].Status != StatusQueued {
		t.Fatalf("out-of-range messages changed state: %+v", m)
	}
}

func TestModelQuitKey(t *testing.T) {
	m := NewModel([]string{"a.mp4"})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if m.Done {
		t.Fatal("quitting early must not mark the run done")
	}
}

func TestRenderProgressBarClamps(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{-0.5, strings.Repeat("░", 10) + " 0%"},
		{0.5, strings.Repeat("█", 5) + strings.Repeat("░", 5) + " 50%"},
		{1.7, strings.Repeat("█", 10) + " 100%"},
	}
	for _, tt := range tests {
		if got := renderProgressBar(tt.progress, 10); got != tt.want {
			t.Errorf("renderProgressBar(%v) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestRenderCutSummaryNoSilence(t *testing.T) {
	got := renderCutSummary(FileProgress{NoSilence: true, Threshold: 0.5, OriginalDuration: 65})
	if !strings.Contains(got, "Kept whole track (1m05s)") {
		t.Errorf("renderCutSummary() = %q", got)
	}
}
