// Command smartpick applies an AI text transform to a selection. The
// selection comes from the command line or stdin, the transform is one of the
// built-in or user-configured templates, and the result streams to the
// terminal as it is generated.
//
// Usage:
//
//	echo "some text" | smartpick -t summarize
//	smartpick -t translate "Bonjour tout le monde"
//	smartpick -models
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/smartpick/smartpick/core/prompt"
	"github.com/smartpick/smartpick/core/render"
	"github.com/smartpick/smartpick/core/session"
	"github.com/smartpick/smartpick/core/session/middleware"
	"github.com/smartpick/smartpick/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "smartpick:", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is not an error; the environment may be set elsewhere.
	_ = godotenv.Load()

	var (
		configPath   = flag.String("config", defaultConfigPath(), "path to the YAML config file")
		templateID   = flag.String("t", "summarize", "template id to apply")
		listModels   = flag.Bool("models", false, "list the models available for the configured provider and exit")
		listTemplate = flag.Bool("templates", false, "list the available templates and exit")
		title        = flag.String("title", "", "document title for the {{title}} placeholder")
		plain        = flag.Bool("plain", false, "stream raw text instead of rendered markdown")
		timeout      = flag.Duration("timeout", 2*time.Minute, "overall generation timeout")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogging(cfg.Logging.Level)

	templates := cfg.AllTemplates()
	if *listTemplate {
		for _, t := range templates {
			fmt.Printf("%-16s %s\n", t.ID, t.Name)
		}
		return nil
	}

	options := []session.Option{
		session.WithMiddlewares(
			middleware.NewLoggingMiddleware(slog.Default()),
			middleware.NewTimeoutMiddleware(*timeout),
		),
	}
	if cfg.Session.MultiTurn {
		options = append(options, session.WithMultiTurn(cfg.Session.MaxHistoryTurns))
	}
	sess := session.New(cfg.AIConfig(), options...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listModels {
		models, err := sess.Models(ctx)
		if err != nil {
			return fmt.Errorf("fetch models: %w", err)
		}
		for _, model := range models {
			fmt.Println(model)
		}
		return nil
	}

	template, ok := prompt.Find(templates, *templateID)
	if !ok {
		return fmt.Errorf("unknown template %q (run with -templates to list)", *templateID)
	}

	selected, err := readSelection(flag.Args())
	if err != nil {
		return err
	}
	if strings.TrimSpace(selected) == "" {
		return errors.New("no selection: pass text as an argument or on stdin")
	}

	promptContext := prompt.Context{Selection: selected, Title: *title}

	sink := newOutput(*plain)
	result, err := sess.Generate(ctx, template, promptContext, sink.Write)
	if err != nil {
		sink.Stop()
		return fmt.Errorf("generate: %w", err)
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	return applyOutputAction(template.OutputAction, result)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "smartpick.yaml"
	}
	return home + "/.config/smartpick/config.yaml"
}

func setupLogging(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// readSelection takes the selection from the remaining arguments, or from
// stdin when no arguments are given.
func readSelection(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// output is the sink the generation streams into.
type output interface {
	Write(chunk string)
	Flush() error
	Stop()
}

// newOutput picks the presentation for the response. On a terminal the text
// is repainted as rendered markdown through a coalescer; piped output (or
// -plain) streams the raw chunks straight through instead, so downstream
// tools see clean text with no escape sequences.
func newOutput(plain bool) output {
	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return &passthroughOutput{}
	}
	return newMarkdownOutput()
}

// passthroughOutput writes each chunk as it arrives.
type passthroughOutput struct {
	stopped bool
}

func (o *passthroughOutput) Write(chunk string) {
	if o.stopped {
		return
	}
	fmt.Print(chunk)
}

func (o *passthroughOutput) Flush() error {
	if o.stopped {
		return nil
	}
	_, err := fmt.Println()
	return err
}

func (o *passthroughOutput) Stop() { o.stopped = true }

// markdownOutput repaints the accumulated response as rendered markdown,
// paced by a coalescer. Each repaint clears the screen first so the partial
// response reads as one growing document rather than a scroll of fragments.
type markdownOutput struct {
	*render.Coalescer
}

func newMarkdownOutput() *markdownOutput {
	markdown, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		// Fall back to plain text when the terminal defeats glamour.
		markdown = nil
	}

	draw := func(full string) error {
		out := full
		if markdown != nil {
			rendered, renderErr := markdown.Render(full)
			if renderErr == nil {
				out = rendered
			}
		}
		// \033[H\033[2J homes the cursor and clears the screen.
		fmt.Print("\033[H\033[2J")
		_, printErr := fmt.Print(out)
		return printErr
	}

	return &markdownOutput{Coalescer: render.New(draw)}
}

// applyOutputAction performs the template's post-generation action. Replace
// and insert are editor concepts; on the command line both mean the result
// has already been printed, while clipboard additionally copies it.
func applyOutputAction(action prompt.OutputAction, result string) error {
	if action != prompt.ActionClipboard {
		return nil
	}
	if err := clipboard.WriteAll(result); err != nil {
		slog.Warn("Could not copy result to clipboard", "error", err)
		return nil
	}
	fmt.Fprintln(os.Stderr, "(result copied to clipboard)")
	return nil
}
