// Command tempo is an interactive timer and stopwatch. It reads queries
// from stdin ("timer 2h 5m", "stopwatch start"), prints ranked
// suggestions, executes the top one, and keeps a live status line while
// anything is running.
package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"tempo/internal/config"
	"tempo/internal/core"
	"tempo/internal/countdown"
	"tempo/internal/display"
	"tempo/internal/engine"
	"tempo/internal/notify"
	"tempo/internal/stopwatch"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (watched for changes)")
	quiet := flag.Bool("quiet", false, "suppress the live status line")
	verbose := flag.Bool("verbose", false, "enable debug output")
	webhook := flag.String("webhook", "", "notification webhook URL (overrides config)")
	refresh := flag.Duration("refresh", 0, "status line refresh cadence (overrides config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		cfg = loaded
	}
	if *webhook != "" {
		cfg.Notification.WebhookURL = *webhook
	}
	if *refresh > 0 {
		cfg.Display.Refresh = *refresh
	}

	var debug *core.DebugLogger
	if *verbose {
		debug = core.NewDebugLogger(os.Stderr)
	}

	clock := core.RealClock{}
	cd := countdown.NewScheduler(clock, core.RealScheduler{}, buildNotifier(cfg))
	cd.Debug = debug
	cd.SetTitle(cfg.Notification.Title)
	sw := stopwatch.New(clock)
	eng := engine.New(cd, sw, scoresFrom(cfg.Scores))

	renderer := display.NewRenderer(eng, cfg.Display.Refresh, *quiet)

	if *configPath != "" {
		// Scores and the notification title reload live; the refresh
		// cadence and webhook wiring apply on restart.
		stop, err := config.Watch(*configPath, func(cfg *config.Config) {
			eng.SetScores(scoresFrom(cfg.Scores))
			cd.SetTitle(cfg.Notification.Title)
			debug.Logf("config reloaded from %s", *configPath)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitError)
		}
		defer stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		renderer.Stop()
		fmt.Fprintln(os.Stderr)
		os.Exit(ExitSuccess)
	}()

	renderer.Start()
	defer renderer.Stop()

	renderer.Print("tempo ready - try \"timer 5m\", \"stopwatch start\", \"status\", \"quit\"")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		handleLine(renderer, eng, line)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: reading input: %v\n", err)
		os.Exit(ExitError)
	}
}

func handleLine(r *display.Renderer, eng *engine.Engine, line string) {
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var suggestions []engine.Suggestion
	switch strings.ToLower(word) {
	case "timer", "t":
		suggestions = eng.SuggestTimer(rest)
	case "stopwatch", "sw":
		suggestions = eng.SuggestStopwatch(rest)
	case "status":
		r.Print(r.StatusLine())
		return
	case "help":
		r.Print("commands: timer <duration|cancel>, stopwatch <start|stop|pause|reset>, status, quit")
		return
	default:
		r.Printf("unknown command %q (try \"help\")", word)
		return
	}

	if len(suggestions) == 0 {
		r.Printf("no match for %q", rest)
		return
	}

	// The top suggestion runs; the rest are shown the way a launcher
	// would list them.
	top := suggestions[0]
	if err := eng.Execute(top.Action); err != nil {
		r.Printf("declined: %v", err)
		return
	}
	r.Printf("%s - %s", top.Label, top.Detail)
	for _, s := range suggestions[1:] {
		r.Printf("  (also: %s - %s)", s.Label, s.Detail)
	}
}

func buildNotifier(cfg *config.Config) core.Notifier {
	sinks := notify.Multi{notify.NewWriter(os.Stdout)}
	if cfg.Notification.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhook(cfg.Notification.WebhookURL))
	}
	var notifier core.Notifier = sinks
	if cfg.Notification.RatePerMinute > 0 {
		notifier = notify.NewRateLimited(notifier, cfg.Notification.RatePerMinute)
	}
	return notifier
}

func scoresFrom(s config.ScoresConfig) engine.Scores {
	return engine.Scores{
		StartTimer:       s.StartTimer,
		CancelTimer:      s.CancelTimer,
		StopwatchControl: s.StopwatchControl,
		Reset:            s.Reset,
	}
}
