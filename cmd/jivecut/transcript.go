package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gofrs/flock"

	"github.com/linuxmatters/jivecut/internal/cli"
	"github.com/linuxmatters/jivecut/internal/logging"
	"github.com/linuxmatters/jivecut/internal/media"
	"github.com/linuxmatters/jivecut/internal/transcribe"
	"github.com/linuxmatters/jivecut/internal/transcript"
	"github.com/linuxmatters/jivecut/internal/ui"
)

// TranscriptCmd cuts a file down to the words left in its edited script
type TranscriptCmd struct {
	File   string `arg:"" name:"file" help:"Video or audio file to edit" type:"existingfile"`
	Script string `type:"path" help:"Editable script path (overrides config)"`
	Words  string `type:"path" help:"Word timings JSON path (overrides config)"`
	Output string `short:"o" type:"path" help:"Output directory (default: next to the input)"`
	Reuse  bool   `help:"Reuse the saved word timings instead of transcribing"`
	Yes    bool   `short:"y" help:"Cut straight away using the script as it is on disk"`
	Watch  bool   `help:"Continue when the script is saved instead of waiting for Enter"`
	NoTUI  bool   `name:"no-tui" help:"Print plain progress lines instead of the interactive UI"`
}

func (c *TranscriptCmd) Run(ctx context.Context, g *Globals) error {
	cfg := g.Config
	startTime := time.Now()

	scriptPath := firstNonEmpty(c.Script, cfg.Transcript.ScriptPath)
	wordsPath := firstNonEmpty(c.Words, cfg.Transcript.WordsPath)
	outDir := firstNonEmpty(c.Output, filepath.Dir(c.File))

	// The script and word timings sit in the working directory by default,
	// so two runs there would overwrite each other's files
	lock := flock.New(scriptPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another jivecut transcript run is using %s", scriptPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.log("[MAIN] Failed to release %s: %v", lock.Path(), err)
		}
		os.Remove(lock.Path())
	}()

	var passes []logging.PassTiming
	passStart := time.Now()

	// The file backend never transcribes, so it always works from the
	// saved words and the script the user has already edited
	reuse := c.Reuse || cfg.Transcribe.Backend == "file"

	var full transcript.Transcript
	if reuse {
		full, err = transcript.Load(wordsPath)
		if err != nil {
			return err
		}
		cli.PrintKeyValue("Word timings", wordsPath)
	} else {
		full, err = c.transcribe(ctx, g)
		if err != nil {
			return err
		}
		if err := transcript.Save(wordsPath, full); err != nil {
			return err
		}
		passes = append(passes, logging.PassTiming{Name: "Transcribing", Elapsed: time.Since(passStart)})
	}

	words := full.Words()
	if len(words) == 0 {
		return errors.New("transcript has no words")
	}
	g.log("[MAIN] Transcript has %d results, %d words", len(full.Results), len(words))

	if !reuse || !fileExists(scriptPath) {
		if err := transcript.WriteScript(scriptPath, full); err != nil {
			return err
		}
	}

	edited, err := c.revise(ctx, g, scriptPath)
	if err != nil {
		return err
	}

	passStart = time.Now()
	alignment, err := transcript.Align(words, edited, cfg.Transcript.BufferSeconds, cfg.Transcript.Punctuation)
	if err != nil {
		return err
	}
	passes = append(passes, logging.PassTiming{Name: "Aligning", Elapsed: time.Since(passStart)})
	g.log("[MAIN] Kept %d words in %d runs, deleted %d", alignment.Kept, len(alignment.Plan), alignment.Deleted)

	if len(alignment.Plan.NonEmpty()) == 0 {
		return errors.New("every word was deleted: nothing to cut")
	}

	original := words[len(words)-1].End
	if probe, err := media.Probe(ctx, cfg.Output.FFprobe, c.File); err == nil && probe.DurationSeconds() > 0 {
		original = probe.DurationSeconds()
	}

	opts, err := cutOptions(ctx, g, c.File)
	if err != nil {
		return err
	}
	outputPath := media.FinalPath(outDir, c.File)
	cli.PrintInfo("Cutting " + filepath.Base(outputPath) + "...")
	passStart = time.Now()
	if err := g.FFmpeg.Cut(ctx, c.File, outputPath, alignment.Plan, opts); err != nil {
		return fmt.Errorf("cut: %w", err)
	}
	passes = append(passes, logging.PassTiming{Name: "Cutting", Elapsed: time.Since(passStart)})

	logging.DisplayEditSummary(os.Stdout, c.File, outputPath, alignment.Plan, original)

	if g.Logs {
		report := logging.ReportData{
			Mode:         logging.ModeTranscript,
			RunID:        g.RunID,
			InputPath:    c.File,
			OutputPath:   outputPath,
			StartTime:    startTime,
			EndTime:      time.Now(),
			Passes:       passes,
			DurationSecs: original,
			Alignment:    alignment,
			Words:        len(words),
			Plan:         alignment.Plan,
		}
		if err := logging.GenerateReport(report); err != nil {
			g.log("[MAIN] Failed to generate log file: %v", err)
		}
	}
	return nil
}

// transcribe splits the file into chunks and sends each for recognition
func (c *TranscriptCmd) transcribe(ctx context.Context, g *Globals) (transcript.Transcript, error) {
	cfg := g.Config
	if cfg.Transcribe.APIKey == "" {
		return transcript.Transcript{}, errors.New("transcribe.api_key is not set (or export OPENAI_API_KEY)")
	}

	backend := transcribe.NewOpenAIBackend(transcribe.OpenAIOptions{
		APIKey:   cfg.Transcribe.APIKey,
		BaseURL:  cfg.Transcribe.BaseURL,
		Model:    cfg.Transcribe.Model,
		Language: cfg.Transcribe.Language,
		Timeout:  time.Duration(cfg.Transcribe.TimeoutSeconds) * time.Second,
	})

	tmpDir, err := os.MkdirTemp("", "jivecut-*")
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("create temp directory: %w", err)
	}
	if !cfg.Output.KeepTemp {
		defer os.RemoveAll(tmpDir)
	}

	// send is a no-op without the UI
	send := func(tea.Msg) {}
	var p *tea.Program
	if useTUI(c.NoTUI) {
		p = tea.NewProgram(ui.NewTranscribeModel())
		send = p.Send
	}

	var chunks []transcript.Chunk
	var workErr error
	work := func() {
		send(ui.TranscribeStartMsg{FilePath: c.File})
		paths, err := g.FFmpeg.SplitAudio(ctx, c.File, tmpDir, cfg.Transcript.ChunkSeconds, cfg.Transcript.SampleRate)
		if err != nil {
			workErr = fmt.Errorf("split audio: %w", err)
			send(ui.TranscribeCompleteMsg{Error: workErr})
			return
		}
		send(ui.ChunksReadyMsg{Total: len(paths)})
		g.log("[MAIN] Split %s into %d chunks", c.File, len(paths))

		chunks, workErr = transcribe.All(ctx, backend, paths, func(done, total int, chunk transcript.Chunk) {
			var n int
			for _, r := range chunk.Results {
				n += len(r.Words)
			}
			g.log("[MAIN] Chunk %d/%d: %d words", done, total, n)
			if p == nil {
				fmt.Printf("  Chunk %d/%d transcribed\n", done, total)
			}
			send(ui.ChunkDoneMsg{Done: done, Total: total, Words: n})
		})
		send(ui.TranscribeCompleteMsg{Error: workErr})
	}

	if p == nil {
		cli.PrintInfo("Transcribing " + filepath.Base(c.File) + "...")
		work()
	} else {
		done := make(chan struct{})
		go func() {
			defer close(done)
			work()
		}()
		final, err := p.Run()
		if err != nil {
			return transcript.Transcript{}, fmt.Errorf("UI error: %w", err)
		}
		if m, ok := final.(ui.TranscribeModel); ok && !m.Finished {
			return transcript.Transcript{}, errors.New("interrupted")
		}
		<-done
	}
	if workErr != nil {
		return transcript.Transcript{}, workErr
	}

	return transcript.Assemble(chunks, cfg.Transcript.ChunkSeconds, cfg.Transcript.Punctuation), nil
}

// revise waits for the user to edit the script, echoes what was read and
// repeats until the user accepts it
func (c *TranscriptCmd) revise(ctx context.Context, g *Globals, scriptPath string) ([]string, error) {
	if !c.Yes {
		cli.PrintKeyValue("Script", scriptPath)
		cli.PrintInfo("Delete the words you want cut. Do not add, reorder or respell words.")
	}

	for {
		if !c.Yes {
			if err := c.awaitEdit(ctx, g, scriptPath); err != nil {
				return nil, err
			}
		}

		edited, err := transcript.ReadScript(scriptPath)
		if err != nil {
			return nil, err
		}
		if c.Yes {
			return edited, nil
		}

		fmt.Println()
		fmt.Println(strings.Join(edited, " "))
		fmt.Println()

		answer, err := cli.Prompt(g.Stdin, os.Stdout, "Press Enter to cut, or r to revise:")
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if !strings.EqualFold(answer, "r") {
			return edited, nil
		}
	}
}

// awaitEdit blocks until the user has saved the script, either by pressing
// Enter or, with --watch, by the save itself
func (c *TranscriptCmd) awaitEdit(ctx context.Context, g *Globals, scriptPath string) error {
	if c.Watch {
		cli.PrintInfo("Waiting for " + filepath.Base(scriptPath) + " to be saved...")
		if err := transcript.WaitForSave(ctx, scriptPath); err != nil {
			return fmt.Errorf("watch script: %w", err)
		}
		return nil
	}
	if _, err := cli.Prompt(g.Stdin, os.Stdout, "Press Enter when you have saved your edits:"); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
