package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/linuxmatters/jivecut/internal/cli"
	"github.com/linuxmatters/jivecut/internal/logging"
	"github.com/linuxmatters/jivecut/internal/media"
	"github.com/linuxmatters/jivecut/internal/processor"
	"github.com/linuxmatters/jivecut/internal/ui"
)

// SilenceCmd cuts every silence quieter than a calibrated threshold
type SilenceCmd struct {
	Files         []string `arg:"" name:"files" help:"Video or audio files to cut" type:"existingfile"`
	SilenceStart  string   `help:"Start of a stretch of room tone used for calibration" placeholder:"XmYs"`
	SilenceEnd    string   `help:"End of the calibration stretch" placeholder:"XmYs"`
	Output        string   `short:"o" type:"path" help:"Output directory (overrides config)"`
	FlushTrailing bool     `help:"Also cut a silence that runs to the end of the file"`
	NoTUI         bool     `name:"no-tui" help:"Print plain progress lines instead of the interactive UI"`
}

// calibration is the pair of timestamps bounding one file's room tone
type calibration struct {
	start, stop string
}

// silenceOutcome is what one file's run produced
type silenceOutcome struct {
	inputPath  string
	outputPath string
	result     *processor.SilenceResult
	config     processor.SilenceConfig
	sampleRate int
	channels   int
	passes     []logging.PassTiming
	startTime  time.Time
}

func (c *SilenceCmd) Run(ctx context.Context, g *Globals) error {
	windows, err := c.calibrations(g)
	if err != nil {
		return err
	}

	outDir := g.Config.Output.Dir
	if c.Output != "" {
		outDir = c.Output
	}

	if !useTUI(c.NoTUI) {
		return c.runPlain(ctx, g, windows, outDir)
	}
	return c.runTUI(ctx, g, windows, outDir)
}

// calibrations collects one calibration window per file, prompting for any
// file when the flags were not given
func (c *SilenceCmd) calibrations(g *Globals) ([]calibration, error) {
	if (c.SilenceStart == "") != (c.SilenceEnd == "") {
		return nil, errors.New("--silence-start and --silence-end must be given together")
	}

	windows := make([]calibration, len(c.Files))
	for i, path := range c.Files {
		if c.SilenceStart != "" {
			if err := checkTimestamps(c.SilenceStart, c.SilenceEnd); err != nil {
				return nil, err
			}
			windows[i] = calibration{start: c.SilenceStart, stop: c.SilenceEnd}
			continue
		}

		cli.PrintInfo(fmt.Sprintf("Calibrating %s: give a stretch with no speech.", filepath.Base(path)))
		for {
			start, err := cli.Prompt(g.Stdin, os.Stdout, "Silence begins at (_m__s):")
			if err != nil {
				return nil, fmt.Errorf("read calibration start: %w", err)
			}
			stop, err := cli.Prompt(g.Stdin, os.Stdout, "Silence ends at (_m__s):")
			if err != nil {
				return nil, fmt.Errorf("read calibration end: %w", err)
			}
			if err := checkTimestamps(start, stop); err != nil {
				cli.PrintError(err.Error())
				continue
			}
			windows[i] = calibration{start: start, stop: stop}
			break
		}
	}
	return windows, nil
}

func checkTimestamps(start, stop string) error {
	from, err := processor.ParseTimestamp(start)
	if err != nil {
		return err
	}
	to, err := processor.ParseTimestamp(stop)
	if err != nil {
		return err
	}
	if to <= from {
		return fmt.Errorf("silence ends at %s, before it begins at %s", stop, start)
	}
	return nil
}

func (c *SilenceCmd) runTUI(ctx context.Context, g *Globals, windows []calibration, outDir string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewModel(c.Files)
	p := tea.NewProgram(model, tea.WithAltScreen())

	var failed int
	var outcomes []*silenceOutcome

	go func() {
		for i, inputPath := range c.Files {
			g.log("[MAIN] Sending FileStartMsg for file %d: %s", i, inputPath)
			p.Send(ui.FileStartMsg{FileIndex: i, FileName: inputPath})

			ph := newProgressHandler(g.log, func(pass int, name string, progress, level float64) {
				p.Send(ui.ProgressMsg{Pass: pass, PassName: name, Progress: progress, Level: level})
			})

			out, err := c.processFile(ctx, g, inputPath, windows[i], outDir, ph)
			if err != nil {
				g.log("[MAIN] %s failed: %v", inputPath, err)
				failed++
				p.Send(ui.FileCompleteMsg{FileIndex: i, Error: err})
				continue
			}
			outcomes = append(outcomes, out)

			g.log("[MAIN] Sending FileCompleteMsg for file %d", i)
			p.Send(ui.FileCompleteMsg{
				FileIndex:        i,
				Threshold:        out.result.Threshold,
				Silences:         len(out.result.Silences),
				OriginalDuration: out.result.Duration,
				EditedDuration:   out.result.KeptDuration(),
				NoSilence:        out.result.NoSilence,
				OutputPath:       out.outputPath,
			})
		}

		g.log("[MAIN] Sending AllCompleteMsg")
		p.Send(ui.AllCompleteMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	if m, ok := final.(ui.Model); ok && !m.Done {
		cancel()
		return errors.New("interrupted")
	}

	for _, out := range outcomes {
		printTips(out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Files))
	}
	return nil
}

func (c *SilenceCmd) runPlain(ctx context.Context, g *Globals, windows []calibration, outDir string) error {
	var failed int
	for i, inputPath := range c.Files {
		cli.PrintInfo(fmt.Sprintf("[%d/%d] %s", i+1, len(c.Files), filepath.Base(inputPath)))

		ph := newProgressHandler(g.log, func(pass int, name string, progress, _ float64) {
			if progress >= 1.0 {
				fmt.Printf("  Pass %d/%d: %s done\n", pass, processor.PassCutting, name)
			}
		})

		out, err := c.processFile(ctx, g, inputPath, windows[i], outDir, ph)
		if err != nil {
			cli.PrintError(fmt.Sprintf("%s: %v", inputPath, err))
			failed++
			continue
		}

		logging.DisplayEditSummary(os.Stdout, out.inputPath, out.outputPath, out.result.Plan, out.result.Duration)
		printTips(out)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(c.Files))
	}
	return nil
}

// processFile runs decode, smooth, scan and cut for one input
func (c *SilenceCmd) processFile(ctx context.Context, g *Globals, inputPath string, window calibration, outDir string, ph *progressHandler) (*silenceOutcome, error) {
	cfg := g.Config
	out := &silenceOutcome{inputPath: inputPath, startTime: time.Now()}

	tmpDir, err := os.MkdirTemp("", "jivecut-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	if cfg.Output.KeepTemp {
		g.log("[MAIN] Keeping temp files in %s", tmpDir)
	} else {
		defer os.RemoveAll(tmpDir)
	}

	// Pass 1: extract a PCM track at the frame rate and reduce it to energy
	ph.callback(processor.PassDecoding, "Decoding", 0.0, 0.0)
	wavPath, err := g.FFmpeg.ExtractAudio(ctx, inputPath, tmpDir, cfg.Silence.FrameRate, cfg.Silence.Channels)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	seq, metadata, err := processor.DecodeEnergy(wavPath, ph.callback)
	if err != nil {
		return nil, err
	}
	out.sampleRate = metadata.SampleRate
	out.channels = metadata.Channels
	g.log("[MAIN] Decoded %d frames at %d Hz", metadata.Frames, metadata.SampleRate)

	silenceCfg := cfg.SilenceConfig(metadata.SampleRate)
	silenceCfg.FlushTrailing = silenceCfg.FlushTrailing || c.FlushTrailing
	out.config = silenceCfg

	// Pass 2
	seq, err = processor.SmoothEnergy(seq, silenceCfg, ph.callback)
	if err != nil {
		return nil, err
	}

	// Pass 3
	calWindow, err := processor.ParseCalibrationWindow(window.start, window.stop, metadata.SampleRate)
	if err != nil {
		return nil, err
	}
	result, err := processor.AnalyzeSilence(seq, calWindow, silenceCfg, ph.callback)
	if err != nil {
		return nil, err
	}
	out.result = result
	g.log("[MAIN] Threshold %.6f, %d silences, keeping %.3fs of %.3fs",
		result.Threshold, len(result.Silences), result.KeptDuration(), result.Duration)

	// Pass 4
	out.outputPath = media.EditedPath(outDir, inputPath)
	ph.callback(processor.PassCutting, "Cutting", 0.0, 0.0)
	opts, err := cutOptions(ctx, g, inputPath)
	if err != nil {
		return nil, err
	}
	if err := g.FFmpeg.Cut(ctx, inputPath, out.outputPath, result.Plan, opts); err != nil {
		return nil, fmt.Errorf("cut: %w", err)
	}
	ph.callback(processor.PassCutting, "Cutting", 1.0, 0.0)
	out.passes = ph.timings()

	if g.Logs {
		report := logging.ReportData{
			Mode:          logging.ModeSilence,
			RunID:         g.RunID,
			InputPath:     inputPath,
			OutputPath:    out.outputPath,
			StartTime:     out.startTime,
			EndTime:       time.Now(),
			Passes:        out.passes,
			SampleRate:    out.sampleRate,
			Channels:      out.channels,
			DurationSecs:  result.Duration,
			Silence:       result,
			SilenceConfig: silenceCfg,
			Plan:          result.Plan,
		}
		if err := logging.GenerateReport(report); err != nil {
			g.log("[MAIN] Failed to generate log file: %v", err)
		}
	}

	return out, nil
}

// cutOptions picks codecs and decides whether the input carries video. When
// ffprobe is unavailable the extension decides; when it runs, an input with
// no audio stream is rejected since there is nothing to cut on.
func cutOptions(ctx context.Context, g *Globals, inputPath string) (media.CutOptions, error) {
	opts := media.CutOptions{
		VideoCodec: g.Config.Output.VideoCodec,
		AudioCodec: g.Config.Output.AudioCodec,
		AudioOnly:  media.IsAudioOnly(inputPath),
	}
	probe, err := media.Probe(ctx, g.Config.Output.FFprobe, inputPath)
	if err != nil {
		g.log("[MAIN] ffprobe failed, using extension: %v", err)
		return opts, nil
	}
	if !probe.HasAudio() {
		return media.CutOptions{}, fmt.Errorf("%s: %w", inputPath, media.ErrNoAudio)
	}
	opts.AudioOnly = opts.AudioOnly || !probe.HasVideo()
	return opts, nil
}

func printTips(out *silenceOutcome) {
	if out == nil || out.result == nil {
		return
	}
	logging.DisplayTips(os.Stdout, logging.GenerateEditTips(out.result, out.config))
}
