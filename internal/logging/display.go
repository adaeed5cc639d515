package logging

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// DisplayEditSummary writes a short plain-text summary of one cut to w.
// Used when the progress UI is off and by the transcript command.
func DisplayEditSummary(w io.Writer, inputPath, outputPath string, plan processor.KeepPlan, original float64) {
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "EDIT: %s → %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Fprintln(w, strings.Repeat("=", 70))

	kept := plan.NonEmpty()
	fmt.Fprintf(w, "Original Video: %s\n", processor.FormatTimestamp(original))
	fmt.Fprintf(w, "Edited Video:   %s\n", processor.FormatTimestamp(plan.Duration()))
	fmt.Fprintf(w, "Kept Intervals: %d\n", len(kept))
	if len(kept) > 0 {
		fmt.Fprintln(w, renderPlan(kept))
	}
	fmt.Fprintln(w)
}

// renderPlan draws the kept intervals as a rounded table
func renderPlan(plan processor.KeepPlan) string {
	tw := NewIntervalTable()
	tw.Style = table.StyleRounded
	for i, t := range plan {
		tw.Add(fmt.Sprintf("%d", i+1), t, "")
	}
	return strings.TrimSuffix(tw.String(), "\n")
}

// DisplayTips writes edit suggestions to w, one per bullet
func DisplayTips(w io.Writer, tips []EditTip) {
	writeTips(w, tips)
}
