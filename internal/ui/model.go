// Package ui provides the Bubbletea terminal user interface for jivecut
package ui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/jivecut/internal/processor"
)

var debugLog io.Writer

// SetDebugLog directs UI trace output to w. A nil writer disables it.
func SetDebugLog(w io.Writer) {
	debugLog = w
}

func log(format string, args ...interface{}) {
	if debugLog != nil {
		fmt.Fprintf(debugLog, format+"\n", args...)
	}
}

// FileStatus is where a file is in the cut queue
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusAnalyzing
	StatusCutting
	StatusComplete
	StatusError
)

func (s FileStatus) String() string {
	switch s {
	case StatusAnalyzing:
		return "analyzing"
	case StatusCutting:
		return "cutting"
	case StatusComplete:
		return "complete"
	case StatusError:
		return "error"
	default:
		return "queued"
	}
}

// FileProgress is the UI's view of one input file
type FileProgress struct {
	InputPath  string
	OutputPath string
	Status     FileStatus

	CurrentPass int
	PassName    string
	Progress    float64 // 0.0 to 1.0 within the current pass
	StartTime   time.Time
	ElapsedTime time.Duration

	// Energy while decoding, the threshold once scanning
	CurrentLevel float64
	PeakLevel    float64

	// Set by FileCompleteMsg
	Threshold        float64
	Silences         int
	OriginalDuration float64
	EditedDuration   float64
	NoSilence        bool

	Error error
}

// advance applies a progress update. The pass clock restarts whenever the
// pass changes.
func (fp *FileProgress) advance(msg ProgressMsg) {
	if msg.Pass != fp.CurrentPass {
		log("[UI] Pass transition: %d -> %d", fp.CurrentPass, msg.Pass)
		fp.StartTime = time.Now()
	}
	fp.CurrentPass = msg.Pass
	fp.PassName = msg.PassName
	fp.Progress = msg.Progress
	fp.ElapsedTime = time.Since(fp.StartTime)

	if msg.Level != 0 {
		fp.CurrentLevel = msg.Level
		fp.PeakLevel = max(fp.PeakLevel, msg.Level)
	}

	fp.Status = StatusAnalyzing
	if msg.Pass == processor.PassCutting {
		fp.Status = StatusCutting
	}
}

// finish records the outcome of a file
func (fp *FileProgress) finish(msg FileCompleteMsg) {
	fp.Error = msg.Error
	if msg.Error != nil {
		fp.Status = StatusError
		return
	}
	fp.Status = StatusComplete
	fp.Progress = 1.0
	fp.OutputPath = msg.OutputPath
	fp.Threshold = msg.Threshold
	fp.Silences = msg.Silences
	fp.OriginalDuration = msg.OriginalDuration
	fp.EditedDuration = msg.EditedDuration
	fp.NoSilence = msg.NoSilence
}

// Model is the Bubbletea model for the silence-cutting queue
type Model struct {
	Files          []FileProgress
	CurrentIndex   int // -1 until the first FileStartMsg
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	StartTime time.Time
	Done      bool

	Width  int
	Height int
}

// NewModel queues the given input files
func NewModel(inputFiles []string) Model {
	files := make([]FileProgress, len(inputFiles))
	for i, path := range inputFiles {
		files[i] = FileProgress{InputPath: path, Status: StatusQueued}
	}
	return Model{
		Files:        files,
		CurrentIndex: -1,
		TotalFiles:   len(inputFiles),
		StartTime:    time.Now(),
	}
}

// file returns the file at i, or nil when i is out of range
func (m *Model) file(i int) *FileProgress {
	if i < 0 || i >= len(m.Files) {
		return nil
	}
	return &m.Files[i]
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		log("[UI] Window size: %dx%d", m.Width, m.Height)

	case FileStartMsg:
		log("[UI] FileStartMsg received: index=%d, file=%s", msg.FileIndex, msg.FileName)
		if fp := m.file(msg.FileIndex); fp != nil {
			m.CurrentIndex = msg.FileIndex
			fp.Status = StatusAnalyzing
			fp.StartTime = time.Now()
		}

	case ProgressMsg:
		if fp := m.file(m.CurrentIndex); fp != nil {
			fp.advance(msg)
		}

	case FileCompleteMsg:
		log("[UI] FileCompleteMsg received: index=%d", msg.FileIndex)
		if fp := m.file(msg.FileIndex); fp != nil {
			fp.finish(msg)
			if msg.Error != nil {
				m.FailedFiles++
			} else {
				m.CompletedFiles++
			}
		}

	case AllCompleteMsg:
		log("[UI] AllCompleteMsg received")
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	switch {
	case m.Width == 0:
		return fmt.Sprintf("Initializing...\nFiles: %d\n", len(m.Files))
	case m.Done:
		return renderCompletionSummary(m)
	default:
		return renderProcessingView(m)
	}
}
