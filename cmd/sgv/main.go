package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/skyeng-labs/skygraph/internal/datasource"
	"github.com/skyeng-labs/skygraph/pkg/config"
	"github.com/skyeng-labs/skygraph/pkg/export"
	"github.com/skyeng-labs/skygraph/pkg/layout"
	"github.com/skyeng-labs/skygraph/pkg/ui"
	"github.com/skyeng-labs/skygraph/pkg/version"
	"github.com/skyeng-labs/skygraph/pkg/watcher"
)

func main() {
	cpuProfile := flag.String("cpu-profile", "", "Write CPU profile to file")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	configPath := flag.String("config", "", "Config file path (default: XDG config dir)")
	theme := flag.String("theme", "", "Force color theme: dark or light (default: detect)")
	noWatch := flag.Bool("no-watch", false, "Disable live reload when the payload file changes")
	noMouse := flag.Bool("no-mouse", false, "Disable mouse support (keyboard only)")
	fps := flag.Int("fps", 0, "Frame rate override (default from config)")
	snapshotFlag := flag.Bool("snapshot", false, "Render a static snapshot and exit (no TUI)")
	outPath := flag.String("o", "", "Snapshot output path (with -snapshot; prompts when omitted)")
	outFormat := flag.String("format", "", "Snapshot format: png or svg (with -snapshot)")
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *help {
		fmt.Println("Usage: sgv [options] <payload>")
		fmt.Println("\nAn interactive compliance graph viewer.")
		fmt.Println("<payload> is a graph JSON file, an assessment SQLite database,")
		fmt.Println("or a directory containing either.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sgv %s\n", version.Version)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: sgv [options] <payload>  (see sgv -help)")
		os.Exit(2)
	}
	sourcePath := flag.Arg(0)

	cfg, cfgErr := loadConfig(*configPath)
	if cfgErr != nil {
		// Non-fatal: continue with defaults.
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", cfgErr)
		cfg = config.DefaultConfig()
	}
	if *fps > 0 {
		cfg.UI.FrameRate = *fps
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	if *noMouse {
		cfg.UI.NoMouse = true
	}
	if *noWatch {
		cfg.Watch.Enabled = false
	}

	if *snapshotFlag {
		if err := runSnapshot(sourcePath, *outPath, *outFormat); err != nil {
			fmt.Fprintf(os.Stderr, "Snapshot failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: sgv requires a terminal (use -snapshot for non-interactive output)")
		os.Exit(1)
	}

	var w *watcher.Watcher
	if cfg.Watch.Enabled {
		var err error
		opts := []watcher.Option{
			watcher.WithDebounceDuration(time.Duration(cfg.Watch.DebounceMS) * time.Millisecond),
			watcher.WithForcePoll(cfg.Watch.ForcePolling),
		}
		if cfg.Watch.PollSeconds > 0 {
			opts = append(opts, watcher.WithPollInterval(time.Duration(cfg.Watch.PollSeconds*float64(time.Second))))
		}
		w, err = watcher.New(sourcePath, opts...)
		if err == nil {
			err = w.Start()
		}
		if err != nil {
			// Live reload is best effort; the viewer still works without it.
			fmt.Fprintf(os.Stderr, "Warning: live reload unavailable: %v\n", err)
			w = nil
		}
	}

	m := ui.New(cfg, sourcePath, w)
	if err := runTUIProgram(m, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running viewer: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runSnapshot renders the payload once, using the deterministic layout, and
// writes a PNG or SVG without starting the TUI.
func runSnapshot(sourcePath, outPath, format string) error {
	res, err := datasource.Load(sourcePath)
	if err != nil {
		return err
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warn)
	}

	if outPath == "" {
		defaultPath := fmt.Sprintf("skygraph-%s.png", time.Now().Format("20060102-150405"))
		if term.IsTerminal(int(os.Stdin.Fd())) {
			outPath, format, err = export.PromptSnapshotOptions(defaultPath)
			if err != nil {
				return err
			}
		} else {
			outPath = defaultPath
		}
	}

	engine := layout.New()
	positions := engine.Compute(res.Graph)
	arrays := make(map[string][3]float64, len(positions))
	for id, v := range positions {
		arrays[id] = [3]float64{v.X, v.Y, v.Z}
	}

	if err := export.SaveSceneSnapshot(export.SceneSnapshotOptions{
		Path:      outPath,
		Format:    format,
		Graph:     res.Graph,
		Positions: arrays,
	}); err != nil {
		return err
	}
	fmt.Printf("Snapshot saved: %s\n", outPath)
	return nil
}

func runTUIProgram(m *ui.Model, cfg config.Config) error {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if !cfg.UI.NoMouse {
		// Full motion tracking: hover needs move events between clicks.
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set SGV_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("SGV_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	return err
}
