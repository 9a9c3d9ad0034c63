package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"sympath/internal/config"
	"sympath/internal/env"
	"sympath/internal/logging"
	"sympath/internal/model"
	"sympath/internal/proc"
	"sympath/internal/sympath"
	"sympath/internal/tui"
	"sympath/internal/watch"
	"sympath/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"go.uber.org/zap"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "sympath-dev",
		Repository: "sympath",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/sympath-dev/sympath/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sympath [options]\n\n")
		fmt.Fprintf(os.Stderr, "sympath keeps a debugger's symbol search path in sync with the\n")
		fmt.Fprintf(os.Stderr, "application currently being debugged. It maintains one environment\n")
		fmt.Fprintf(os.Stderr, "variable: a fixed symbol-server prefix plus the debuggee's directory.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sympath -a myapp.exe          # Start TUI mode tracking myapp.exe\n")
		fmt.Fprintf(os.Stderr, "  sympath -a myapp.exe --watch  # Headless sync daemon\n")
		fmt.Fprintf(os.Stderr, "  sympath -a myapp.exe --once   # Single sync pass, then exit\n")
		fmt.Fprintf(os.Stderr, "  sympath --report              # Print diagnostic report to stdout\n")
		fmt.Fprintf(os.Stderr, "  sympath --json                # Output current state as JSON\n")
	}

	appFlag := pflag.StringP("app", "a", "", "Image name of the application to track (overrides config)")
	configFlag := pflag.StringP("config", "c", "", "Path to config file")
	watchFlag := pflag.BoolP("watch", "w", false, "Run the sync loop headless, logging to the log file")
	onceFlag := pflag.BoolP("once", "1", false, "Perform a single sync pass and exit")
	jsonFlag := pflag.BoolP("json", "j", false, "Output current symbol path state as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Generate a diagnostic report (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include raw value and per-segment detail in the report")
	webFlag := pflag.BoolP("web", "W", false, "Serve the status page over HTTP")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("sympath version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *appFlag != "" {
		cfg.Settings.Application = *appFlag
	}

	if *reportFlag {
		runReportMode(cfg, *outputFlag, *verboseFlag)
		return
	}

	if *jsonFlag {
		runJsonMode(cfg)
		return
	}

	if *onceFlag {
		runOnceMode(cfg)
		return
	}

	if *webFlag {
		runWebMode(cfg)
		return
	}

	if *watchFlag {
		runWatchMode(cfg)
		return
	}

	// Default: TUI
	runTuiMode(cfg)
}

// newService wires the OS-backed store and checker into the core.
// Construction normalizes the variable (writes the prefix if the stored
// value differs), which is this tool's contract in every mode.
func newService(cfg config.Config) *sympath.Service {
	return sympath.NewService(cfg.Settings, env.NewOSStore(), env.OSChecker{})
}

func runReportMode(cfg config.Config, outputFile string, verbose bool) {
	report := newService(cfg).Report()
	text := sympath.FormatReport(report, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(text), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(text)
	}
}

func runJsonMode(cfg config.Config) {
	report := newService(cfg).Report()

	response := struct {
		sympath.Report
		Version string `json:"Version"`
	}{
		Report:  report,
		Version: model.Version,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(response)
}

func runOnceMode(cfg config.Config) {
	if cfg.Settings.Application == "" {
		fmt.Fprintln(os.Stderr, "No application configured; pass --app or set it in the config file.")
		os.Exit(1)
	}

	service := newService(cfg)
	watcher := watch.New(cfg.Settings, proc.NewDirectory(), service, clockwork.NewRealClock(), nil)

	ev := watcher.SyncOnce()
	switch ev.Kind {
	case watch.EventSynced:
		fmt.Printf("Synchronized %s to %s\n", cfg.Settings.Variable, ev.Dir)
	case watch.EventIdle:
		fmt.Printf("%s is not running; %s left as-is\n", cfg.Settings.Application, cfg.Settings.Variable)
		os.Exit(1)
	case watch.EventFailed:
		fmt.Fprintf(os.Stderr, "Sync failed: %v\n", ev.Err)
		os.Exit(1)
	}
}

func runWatchMode(cfg config.Config) {
	if cfg.Settings.Application == "" {
		fmt.Fprintln(os.Stderr, "No application configured; pass --app or set it in the config file.")
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.LogFile != "" {
		logger = logging.NewFileLogger(cfg.LogFile)
	} else {
		logger = logging.NewConsoleLogger()
	}
	defer logger.Sync()

	service := newService(cfg)
	watcher := watch.New(cfg.Settings, proc.NewDirectory(), service, clockwork.NewRealClock(), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching for %s every %s (log: %s). Ctrl+C to stop.\n",
		cfg.Settings.Application, cfg.Settings.PollInterval, cfg.LogFile)
	watcher.Run(ctx)
}

func runWebMode(cfg config.Config) {
	service := newService(cfg)
	watcher := watch.New(cfg.Settings, proc.NewDirectory(), service, clockwork.NewRealClock(), nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go watcher.Run(ctx)

	web.StartServer(ctx, cfg.WebAddr, watcher)
}

func runTuiMode(cfg config.Config) {
	service := newService(cfg)
	watcher := watch.New(cfg.Settings, proc.NewDirectory(), service, clockwork.NewRealClock(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	m := tui.InitialModel(cfg.Settings, watcher)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
