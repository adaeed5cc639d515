// Package logging generates edit reports for cut files.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/jivecut/internal/processor"
	"github.com/linuxmatters/jivecut/internal/transcript"
)

// Report modes
const (
	ModeSilence    = "silence"
	ModeTranscript = "transcript"
)

// PassTiming is the wall-clock time spent in one named pass
type PassTiming struct {
	Name    string
	Elapsed time.Duration
}

// ReportData contains all the information needed to generate an edit report
type ReportData struct {
	Mode         string // ModeSilence or ModeTranscript
	RunID        string // ties the report to the debug log
	InputPath    string
	OutputPath   string
	StartTime    time.Time
	EndTime      time.Time
	Passes       []PassTiming
	SampleRate   int
	Channels     int
	DurationSecs float64 // Duration of the source in seconds

	// Silence mode
	Silence       *processor.SilenceResult
	SilenceConfig processor.SilenceConfig

	// Transcript mode
	Alignment *transcript.Alignment
	Words     int // transcript words before editing

	// Plan is the keep plan that was cut
	Plan processor.KeepPlan
}

// ReportPath returns the report location for an output file:
// presenter1-edited.mp4 → presenter1-edited-jivecut.log
func ReportPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "-jivecut.log"
}

// GenerateReport creates a detailed edit report and saves it alongside the
// output file at ReportPath(data.OutputPath).
//
// Report structure:
// 1. Header - file info and timestamp
// 2. Processing Summary - pass timings
// 3. Calibration and Segmentation, or Alignment
// 4. Keep Plan - interval table and duration summary
// 5. Suggestions - silence mode only
func GenerateReport(data ReportData) error {
	logPath := ReportPath(data.OutputPath)

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	WriteReport(f, data)
	return nil
}

// WriteReport writes the report body to w
func WriteReport(w io.Writer, data ReportData) {
	writeReportHeader(w, data)
	writeProcessingSummary(w, data)

	switch data.Mode {
	case ModeSilence:
		writeCalibration(w, data.Silence)
		writeSilenceTable(w, data.Silence)
	case ModeTranscript:
		writeAlignment(w, data.Alignment, data.Words)
	}

	writePlanTable(w, data.Plan, data.DurationSecs)

	if data.Mode == ModeSilence {
		writeTips(w, GenerateEditTips(data.Silence, data.SilenceConfig))
	}
}

// writeSection writes a section header with title and dashed underline.
// The underline length matches the title length.
func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

// writeReportHeader outputs the report header with file info and timestamp.
func writeReportHeader(w io.Writer, data ReportData) {
	fmt.Fprintln(w, "Jivecut Edit Report")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "File: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(w, "Output: %s\n", filepath.Base(data.OutputPath))
	fmt.Fprintf(w, "Mode: %s\n", data.Mode)
	if data.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", data.RunID)
	}
	fmt.Fprintf(w, "Processed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Duration: %s\n", formatDuration(secondsToDuration(data.DurationSecs)))
	if data.SampleRate > 0 {
		fmt.Fprintf(w, "Audio: %d Hz, %s\n", data.SampleRate, channelName(data.Channels))
	}
	fmt.Fprintln(w, "")
}

// writeProcessingSummary outputs the processing time summary for all passes.
func writeProcessingSummary(w io.Writer, data ReportData) {
	writeSection(w, "Processing Summary")

	width := 0
	for _, p := range data.Passes {
		width = max(width, len(p.Name))
	}
	for i, p := range data.Passes {
		fmt.Fprintf(w, "Pass %d (%s):%s %s\n", i+1, p.Name, strings.Repeat(" ", width-len(p.Name)), formatDuration(p.Elapsed))
	}

	totalTime := data.EndTime.Sub(data.StartTime)
	fmt.Fprintf(w, "Total: %s", formatDuration(totalTime))

	if data.DurationSecs > 0 && totalTime > 0 {
		rtf := float64(secondsToDuration(data.DurationSecs)) / float64(totalTime)
		fmt.Fprintf(w, " (%.0fx real-time)", rtf)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "")
}

// writeCalibration outputs the calibration window and derived threshold.
func writeCalibration(w io.Writer, r *processor.SilenceResult) {
	if r == nil {
		return
	}
	writeSection(w, "Calibration")

	rate := float64(r.FrameRate)
	fmt.Fprintf(w, "Frame Rate:  %d frames/s\n", r.FrameRate)
	fmt.Fprintf(w, "Window:      frames %d-%d (%s to %s)\n",
		r.Window.Start, r.Window.Stop,
		processor.FormatTimestamp(float64(r.Window.Start)/rate),
		processor.FormatTimestamp(float64(r.Window.Stop)/rate))
	fmt.Fprintf(w, "Threshold:   %s\n", formatMetric(r.Threshold, 6))
	fmt.Fprintln(w, "")
}

// writeSilenceTable outputs every detected silence in seconds.
func writeSilenceTable(w io.Writer, r *processor.SilenceResult) {
	if r == nil {
		return
	}
	writeSection(w, "Silences")

	if len(r.Silences) == 0 {
		fmt.Fprintln(w, "No silence found: the whole track was kept.")
		fmt.Fprintln(w, "")
		return
	}

	table := NewIntervalTable()
	for i, s := range r.Silences {
		table.Add(fmt.Sprintf("Silence %d", i+1), s.Seconds(r.FrameRate), "")
	}
	fmt.Fprint(w, table.String())
	fmt.Fprintf(w, "%d silences, %s removed\n", len(r.Silences), formatSeconds(table.Total()))
	fmt.Fprintln(w, "")
}

// writeAlignment outputs how many transcript words survived the edit.
func writeAlignment(w io.Writer, a *transcript.Alignment, words int) {
	if a == nil {
		return
	}
	writeSection(w, "Alignment")

	fmt.Fprintf(w, "Transcript Words: %d\n", words)
	fmt.Fprintf(w, "Kept:             %d\n", a.Kept)
	fmt.Fprintf(w, "Deleted:          %d\n", a.Deleted)
	fmt.Fprintf(w, "Runs:             %d\n", len(a.Plan))
	fmt.Fprintln(w, "")
}

// writePlanTable outputs the keep plan and the duration summary.
func writePlanTable(w io.Writer, plan processor.KeepPlan, original float64) {
	writeSection(w, "Keep Plan")

	if len(plan) == 0 {
		fmt.Fprintln(w, "Nothing kept.")
		fmt.Fprintln(w, "")
		return
	}

	table := NewIntervalTable()
	for i, t := range plan {
		note := ""
		if t.Duration() <= 0 {
			note = "empty, skipped"
		}
		table.Add(fmt.Sprintf("Keep %d", i+1), t, note)
	}
	fmt.Fprint(w, table.String())

	edited := plan.Duration()
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Original: %s\n", processor.FormatTimestamp(original))
	fmt.Fprintf(w, "Edited:   %s\n", processor.FormatTimestamp(edited))
	fmt.Fprintf(w, "Change:   %s s\n", formatMetricSigned(edited-original, 3))
	fmt.Fprintln(w, "")
}

// writeTips outputs edit suggestions when any rule fired.
func writeTips(w io.Writer, tips []EditTip) {
	if len(tips) == 0 {
		return
	}
	writeSection(w, "Suggestions")
	for _, tip := range tips {
		fmt.Fprintf(w, "• %s\n", wrapText(tip.Message, 70, "  "))
	}
	fmt.Fprintln(w, "")
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// channelName returns a human-readable channel name
func channelName(channels int) string {
	switch channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%d channels", channels)
	}
}
