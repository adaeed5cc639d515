package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/linuxmatters/jivecut/internal/cli"
	"github.com/linuxmatters/jivecut/internal/config"
	"github.com/linuxmatters/jivecut/internal/media"
	"github.com/linuxmatters/jivecut/internal/ui"
)

var (
	version = "0.0.1"
)

// versionFlag prints the styled version banner and exits before any
// command is required
type versionFlag bool

func (v versionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// CLI defines the command-line interface
type CLI struct {
	Version versionFlag `short:"v" help:"Show version information"`
	Config  string      `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Logs    bool        `help:"Save a detailed edit report next to each output"`

	Silence    SilenceCmd    `cmd:"" help:"Cut the silences in video or audio files"`
	Transcript TranscriptCmd `cmd:"" help:"Cut the words deleted from an editable transcript"`
	InitConfig InitConfigCmd `cmd:"" name:"init-config" help:"Write a sample configuration file"`
}

// Globals is shared by every command's Run method
type Globals struct {
	Config     *config.Config
	ConfigPath string
	Logs       bool
	FFmpeg     *media.FFmpeg
	Stdin      *bufio.Reader
	RunID      string
	log        func(format string, args ...interface{})
}

// InitConfigCmd writes the default configuration for editing
type InitConfigCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"Where to write the file (default: ~/.config/jivecut/config.toml)"`
}

func (c *InitConfigCmd) Run(g *Globals) error {
	path := c.Path
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}
	if err := config.CreateSample(path); err != nil {
		return err
	}
	cli.PrintKeyValue("Config written", path)
	return nil
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("jivecut"),
		kong.Description("Cut silence and unwanted speech from recorded video"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	cfg, cfgPath, _, err := config.Load(cliArgs.Config)
	if err != nil {
		cli.PrintError(fmt.Sprintf("Config: %v", err))
		os.Exit(1)
	}

	// Open debug log file
	debugLog, _ := os.Create("jivecut-debug.log")
	defer debugLog.Close()
	log := func(format string, args ...interface{}) {
		if debugLog != nil {
			fmt.Fprintf(debugLog, format+"\n", args...)
		}
	}
	if debugLog != nil {
		ui.SetDebugLog(debugLog)
	}
	runID := uuid.NewString()
	log("[MAIN] jivecut %s, run %s, config %s", version, runID, cfgPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	globals := &Globals{
		Config:     cfg,
		ConfigPath: cfgPath,
		Logs:       cliArgs.Logs,
		FFmpeg:     media.New(cfg.Output.FFmpeg),
		Stdin:      bufio.NewReader(os.Stdin),
		RunID:      runID,
		log:        log,
	}

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(globals); err != nil {
		log("[MAIN] %s failed: %v", kctx.Command(), err)
		cli.PrintError(err.Error())
		debugLog.Close()
		os.Exit(1)
	}
}
