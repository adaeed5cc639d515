package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner frames for indeterminate progress
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TranscribeModel is shown while a file is split into chunks and sent for
// transcription. Stage is "Splitting" until the chunks exist, then
// "Transcribing".
type TranscribeModel struct {
	FileName  string
	FilePath  string
	Stage     string
	Done      int // chunks transcribed
	Total     int
	Words     int // words recognised so far
	StartTime time.Time

	spinnerIndex int

	Error    error
	Finished bool

	Width  int
	Height int
}

// TranscribeStartMsg signals a file has started
type TranscribeStartMsg struct {
	FilePath string
}

// ChunksReadyMsg signals the audio has been split
type ChunksReadyMsg struct {
	Total int
}

// ChunkDoneMsg signals one chunk has been transcribed
type ChunkDoneMsg struct {
	Done  int
	Total int
	Words int // words in this chunk
}

// TranscribeCompleteMsg signals transcription has finished
type TranscribeCompleteMsg struct {
	Error error
}

// tickMsg is sent for spinner/timer animation
type tickMsg time.Time

// NewTranscribeModel creates a new transcription UI model
func NewTranscribeModel() TranscribeModel {
	return TranscribeModel{
		StartTime: time.Now(),
		Stage:     "Splitting",
	}
}

func (m TranscribeModel) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick message every 100ms
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m TranscribeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		if !m.Finished {
			m.spinnerIndex = (m.spinnerIndex + 1) % len(spinnerFrames)
			return m, tickCmd()
		}
		return m, nil

	case TranscribeStartMsg:
		m.FileName = filepath.Base(msg.FilePath)
		m.FilePath = msg.FilePath
		m.StartTime = time.Now()
		return m, nil

	case ChunksReadyMsg:
		m.Stage = "Transcribing"
		m.Total = msg.Total
		return m, nil

	case ChunkDoneMsg:
		m.Done = msg.Done
		m.Total = msg.Total
		m.Words += msg.Words
		return m, nil

	case TranscribeCompleteMsg:
		m.Error = msg.Error
		m.Finished = true
		return m, tea.Quit
	}

	return m, nil
}

// View shows the stage, the file and either chunk progress or a spinner
func (m TranscribeModel) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	header := titleStyle.Render("Jivecut") + " " + subtitleStyle.Render("Transcript Mode") + "\n\n"
	if m.FileName == "" {
		return header + "Waiting..."
	}

	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "%s: %s\n\n", m.Stage, lipgloss.NewStyle().Bold(true).Render(m.FileName))

	if !m.Finished {
		elapsed := time.Since(m.StartTime)
		b.WriteString(lipgloss.NewStyle().Foreground(brandColor).Render(spinnerFrames[m.spinnerIndex]))
		b.WriteString(" ")
		if m.Total > 0 {
			b.WriteString(renderChunkProgressBar(float64(m.Done)/float64(m.Total), barWidth, elapsed))
			fmt.Fprintf(&b, "\n\nChunk %d of %d | %d words", m.Done, m.Total, m.Words)
		} else {
			fmt.Fprintf(&b, "Working... [%s]", formatElapsed(elapsed))
		}
	}
	b.WriteString("\n")

	return b.String()
}

// renderChunkProgressBar is a thin line bar with percentage and elapsed time
func renderChunkProgressBar(progress float64, width int, elapsed time.Duration) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	bar := lipgloss.NewStyle().Foreground(brandColor).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render(strings.Repeat("━", width-filled))
	return fmt.Sprintf("%s %3d%% [%s]", bar, int(progress*100), formatElapsed(elapsed))
}

// formatElapsed formats elapsed time as MM:SS or HH:MM:SS
func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
