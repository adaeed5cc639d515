package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/linuxmatters/jivecut/internal/processor"
)

// EditTip is a single piece of actionable advice derived from a silence
// analysis, aimed at choosing a better calibration window or settings.
type EditTip struct {
	Priority int    // Higher = more important (1-10)
	Message  string // Human-readable advice (1-2 sentences)
	RuleID   string // Identifier for testing/logging (e.g., "heavy_cut")
}

// MaxEditTips is the maximum number of tips to return.
const MaxEditTips = 3

// Rule thresholds
const (
	heavyCutKeptRatio   = 0.5  // kept/original below this is a heavy cut
	lightCutRemoved     = 0.02 // removed/original below this is a light cut
	choppyCutsPerMinute = 15.0
)

type tipRule func(*processor.SilenceResult, processor.SilenceConfig) *EditTip

// GenerateEditTips inspects a silence analysis and returns prioritised
// suggestions. A nil result yields no tips.
func GenerateEditTips(r *processor.SilenceResult, cfg processor.SilenceConfig) []EditTip {
	if r == nil || r.Duration <= 0 {
		return nil
	}

	var tips []EditTip
	firedRules := make(map[string]bool)

	rules := []tipRule{
		tipThresholdZero,
		tipNoSilence,
		tipHeavyCut,
		tipChoppyCuts,
		tipLightCut,
	}

	for _, rule := range rules {
		if tip := rule(r, cfg); tip != nil {
			tips = append(tips, *tip)
			firedRules[tip.RuleID] = true
		}
	}

	tips = applyExclusions(tips, firedRules)

	// Sort by priority (descending)
	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].Priority > tips[j].Priority
	})

	if len(tips) > MaxEditTips {
		tips = tips[:MaxEditTips]
	}

	return tips
}

// applyExclusions removes tips that are redundant when a more specific tip
// has already fired.
func applyExclusions(tips []EditTip, fired map[string]bool) []EditTip {
	var result []EditTip
	for _, tip := range tips {
		switch tip.RuleID {
		case "no_silence":
			if fired["threshold_zero"] {
				continue
			}
		case "choppy_cuts":
			if fired["heavy_cut"] {
				continue
			}
		}
		result = append(result, tip)
	}
	return result
}

// wrapText wraps text at word boundaries to fit within maxWidth columns.
// Continuation lines are prefixed with indent.
func wrapText(text string, maxWidth int, indent string) string {
	words := strings.Fields(text)
	var lines []string
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= maxWidth {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n"+indent)
}

// tipThresholdZero fires when the calibration window was digital silence.
// Only frames of exactly zero can then fall at or below the threshold.
func tipThresholdZero(r *processor.SilenceResult, _ processor.SilenceConfig) *EditTip {
	if r.Threshold > 0 {
		return nil
	}
	return &EditTip{
		Priority: 10,
		RuleID:   "threshold_zero",
		Message:  "The calibration window is digital silence, so only exact zeros count as silent. Pick a stretch of room tone instead.",
	}
}

// tipNoSilence fires when nothing was cut.
func tipNoSilence(r *processor.SilenceResult, cfg processor.SilenceConfig) *EditTip {
	if !r.NoSilence {
		return nil
	}
	return &EditTip{
		Priority: 9,
		RuleID:   "no_silence",
		Message: fmt.Sprintf("No pause stayed below the threshold for longer than %.2fs. Choose a calibration window with slightly louder room tone or lower min_silence_seconds.",
			minSilenceSeconds(cfg)),
	}
}

// tipHeavyCut fires when less than half of the track survives, which usually
// means the calibration window caught the start of speech.
func tipHeavyCut(r *processor.SilenceResult, _ processor.SilenceConfig) *EditTip {
	kept := r.KeptDuration() / r.Duration
	if r.NoSilence || kept >= heavyCutKeptRatio {
		return nil
	}
	return &EditTip{
		Priority: 8,
		RuleID:   "heavy_cut",
		Message:  fmt.Sprintf("Only %.0f%% of the track was kept. The calibration window may include speech, so choose a quieter pause.", kept*100),
	}
}

// tipChoppyCuts fires when cuts are so frequent the edit may sound rushed.
func tipChoppyCuts(r *processor.SilenceResult, _ processor.SilenceConfig) *EditTip {
	perMinute := float64(len(r.Silences)) / (r.Duration / 60)
	if perMinute <= choppyCutsPerMinute {
		return nil
	}
	return &EditTip{
		Priority: 6,
		RuleID:   "choppy_cuts",
		Message:  fmt.Sprintf("The edit has %.0f cuts per minute and may sound choppy. Raise min_silence_seconds to keep short pauses.", perMinute),
	}
}

// tipLightCut fires when silences were found but almost nothing was removed.
func tipLightCut(r *processor.SilenceResult, _ processor.SilenceConfig) *EditTip {
	removed := (r.Duration - r.KeptDuration()) / r.Duration
	if r.NoSilence || removed >= lightCutRemoved {
		return nil
	}
	return &EditTip{
		Priority: 4,
		RuleID:   "light_cut",
		Message:  fmt.Sprintf("Only %.1f%% of the track was removed. If you expected more, reduce edge_buffer_seconds or pick a louder calibration window.", removed*100),
	}
}

func minSilenceSeconds(cfg processor.SilenceConfig) float64 {
	if cfg.FrameRate <= 0 {
		return 0
	}
	return float64(cfg.MinSilence) / float64(cfg.FrameRate)
}
