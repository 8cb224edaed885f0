// Command veloterm is the CLI entry point: it resolves the config
// directory, loads (or defaults) the config, builds the glyph atlas and
// the root Workspace model, and drives it with a bubbletea.Program the
// same way elvisnm-wt's main.go drives its dashboard Model, with the
// daemon-style signal-driven graceful shutdown from the teacher's
// cmd/daemon.go (internal/daemon run loop).
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/veloterm/veloterm/internal/app"
	"github.com/veloterm/veloterm/internal/atlas"
	"github.com/veloterm/veloterm/internal/config"
)

const defaultScaleFactor = 1.0

var (
	flagConfigPath    string
	flagPrintDefaults bool
)

// flagParseError marks an error that came from cobra/pflag's own flag
// parsing (unrecognized flag, missing argument) rather than from
// RunE, so main can map it to exit code 2 per spec.md §6's CLI surface.
type flagParseError struct{ err error }

func (e *flagParseError) Error() string { return e.err.Error() }
func (e *flagParseError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "veloterm",
	Short: "A GPU-accelerated terminal emulator with native multiplexing",
	Long: `VeloTerm renders terminal panes through a glyph-atlas-backed
render pipeline and multiplexes tabs and splits natively, without
shelling out to tmux or screen.`,
	RunE:          runVeloterm,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfigPath, "config", "", "path to a config file (default: the platform config directory)")
	rootCmd.Flags().BoolVar(&flagPrintDefaults, "print-default-config", false, "print the default configuration as YAML and exit")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &flagParseError{err: err}
	})
}

func runVeloterm(cmd *cobra.Command, args []string) error {
	if flagPrintDefaults {
		data, err := config.PrintDefault()
		if err != nil {
			return fmt.Errorf("printing default config: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	configPath := flagConfigPath
	if configPath == "" {
		if err := config.InitConfigDir(""); err != nil {
			return fmt.Errorf("resolving config directory: %w", err)
		}
		configPath = config.ConfigPath()
	}

	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		loaded, loadErr := config.Load(configPath)
		if loadErr != nil {
			// spec.md §7 ConfigParseError policy: log and fall back to
			// defaults rather than refuse to start.
			fmt.Fprintf(os.Stderr, "veloterm: %v (using defaults)\n", loadErr)
		} else {
			cfg = loaded
		}
	}

	// The software-compositor fallback path (internal/app/view.go) only
	// makes sense writing to a real terminal; a pipe or file redirect
	// would just fill up with raw ANSI escapes meant for a screen.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	at, err := atlas.New(atlas.NoFontSource{}, cfg.Font.Family, cfg.Font.SizePx, defaultScaleFactor)
	if err != nil {
		return fmt.Errorf("building glyph atlas: %w", err)
	}

	clip := app.Clipboard{Write: clipboard.WriteAll, Read: clipboard.ReadAll}
	workspace := app.NewWorkspace(cfg, at, atlas.NoFontSource{}, defaultScaleFactor, clip)
	workspace.AttachWatcher(configPath)

	program := tea.NewProgram(workspace, tea.WithAltScreen(), tea.WithMouseAllMotion())

	var g errgroup.Group
	g.Go(func() error {
		_, err := program.Run()
		return err
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		program.Quit()
	}()

	runErr := g.Wait()
	signal.Stop(sigCh)

	if shutdownErr := workspace.Shutdown(); shutdownErr != nil {
		fmt.Fprintf(os.Stderr, "veloterm: shutdown: %v\n", shutdownErr)
	}
	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var fpe *flagParseError
		if errors.As(err, &fpe) {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, rootCmd.UsageString())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "veloterm:", err)
		os.Exit(1)
	}
}
