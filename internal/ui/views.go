package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/linuxmatters/jivecut/internal/processor"
)

const (
	passCount = processor.PassCutting
	boxWidth  = 60
	barWidth  = 40
)

var (
	brandColor = lipgloss.Color("#A40000")
	mutedColor = lipgloss.Color("#888888")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(brandColor)
	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	activeBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(brandColor).
			Padding(0, 1).
			Width(boxWidth)

	footerBox = activeBox.BorderForeground(mutedColor)
)

// statusIcons maps each queue state to its glyph and colour
var statusIcons = map[FileStatus]string{
	StatusQueued:    lipgloss.NewStyle().Foreground(mutedColor).Render("○"),
	StatusAnalyzing: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙"),
	StatusCutting:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("✂"),
	StatusComplete:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓"),
	StatusError:     lipgloss.NewStyle().Foreground(brandColor).Render("✗"),
}

func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Jivecut ✂ - Silence Cutter"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Processing %d file(s)", m.TotalFiles)))
	b.WriteString("\n\n")

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	footer := fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedFiles, m.TotalFiles)
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
		footer = fmt.Sprintf("Processing file %d of %d (%d complete)",
			m.CurrentIndex+1, m.TotalFiles, m.CompletedFiles)
	}
	b.WriteString(footerBox.Render(footer))

	return b.String()
}

// renderFileEntry is a file's status line followed by one indented detail
// line, or a details box while the file is being worked on
func renderFileEntry(file FileProgress) string {
	name := filepath.Base(file.InputPath)
	head := fmt.Sprintf(" %s %s", statusIcons[file.Status], name)

	switch file.Status {
	case StatusComplete:
		return fmt.Sprintf("%s → %s\n   %s", head, filepath.Base(file.OutputPath), renderCutSummary(file))
	case StatusAnalyzing, StatusCutting:
		return head + "\n" + renderFileDetails(file)
	case StatusError:
		return fmt.Sprintf("%s\n   Error: %v", head, file.Error)
	default:
		return head + "\n   Queued..."
	}
}

func renderCutSummary(file FileProgress) string {
	original := processor.FormatTimestamp(file.OriginalDuration)
	if file.NoSilence {
		return fmt.Sprintf("No silence below %.4f | Kept whole track (%s)", file.Threshold, original)
	}
	return fmt.Sprintf("Threshold: %.4f | Silences: %d | %s → %s",
		file.Threshold, file.Silences, original, processor.FormatTimestamp(file.EditedDuration))
}

func renderFileDetails(file FileProgress) string {
	pass := file.PassName
	if pass == "" {
		pass = "Starting"
	}

	// Remaining time is extrapolated from progress within the current pass
	elapsed := file.ElapsedTime.Seconds()
	remaining := 0.0
	if file.Progress > 0 {
		remaining = elapsed/file.Progress - elapsed
	}

	lines := []string{
		fmt.Sprintf("Pass %d/%d: %s", file.CurrentPass, passCount, pass),
		renderProgressBar(file.Progress, barWidth),
		"",
		fmt.Sprintf("⏱  Elapsed: %.1fs | Remaining: ~%.1fs", elapsed, remaining),
	}
	if file.CurrentLevel != 0 {
		lines = append(lines, fmt.Sprintf("📊 Energy: %.4f | Peak: %.4f", file.CurrentLevel, file.PeakLevel))
	}
	return activeBox.Render(strings.Join(lines, "\n"))
}

// renderProgressBar draws width cells of bar followed by the percentage.
// progress is clamped to [0, 1].
func renderProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return fmt.Sprintf("%s%s %d%%",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), int(progress*100))
}

func renderCompletionSummary(m Model) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00")).Render("✨ Cutting Complete!"))
	b.WriteString("\n\n")

	var original, edited float64
	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
		if file.Status == StatusComplete {
			original += file.OriginalDuration
			edited += file.EditedDuration
		}
	}

	b.WriteString("\n" + strings.Repeat("─", boxWidth) + "\n")
	fmt.Fprintf(&b, "%d cut, %d failed | Original: %s | Edited: %s\n",
		m.CompletedFiles, m.FailedFiles,
		processor.FormatTimestamp(original), processor.FormatTimestamp(edited))

	return b.String()
}
