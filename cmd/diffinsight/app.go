package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	charm "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffinsight"
	"github.com/fwojciec/diffinsight/bubbletea"
	"github.com/fwojciec/diffinsight/chroma"
	"github.com/fwojciec/diffinsight/clipboard"
	"github.com/fwojciec/diffinsight/config"
	"github.com/fwojciec/diffinsight/fs"
	"github.com/fwojciec/diffinsight/gemini"
	"github.com/fwojciec/diffinsight/lipgloss"
	"github.com/fwojciec/diffinsight/stub"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

// ErrNoSource is returned when --git is used without a diff source.
var ErrNoSource = errors.New("no git diff source configured")

// App encapsulates the application logic for testing.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether Stdin is interactive. Piped input is
	// read only when it is not.
	StdinIsTerminal bool

	Getenv func(string) string
	Source diffinsight.DiffSource

	// Analyzer and Clipboard replace the configured implementations when set.
	Analyzer  diffinsight.Analyzer
	Clipboard diffinsight.Clipboard

	// RunTUI shows the interactive screen. Defaults to the Bubble Tea viewer.
	RunTUI func(ctx context.Context, analyzer diffinsight.Analyzer, input string, opts []bubbletea.ModelOption) error
}

// flags holds the parsed command-line flags of one invocation.
type flags struct {
	config      string
	analyzer    string
	model       string
	timeout     time.Duration
	theme       string
	clipboard   string
	lang        string
	color       string
	debug       string
	noCache     bool
	clearResult bool
	git         bool
	repo        string

	copy   string
	format string
	width  int
}

// Run executes the command line given by args.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.Command()
	cmd.SetArgs(args)
	cmd.SetIn(a.Stdin)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	return cmd.ExecuteContext(ctx)
}

// Command builds the root command. Without a subcommand it opens the
// interactive screen.
func (a *App) Command() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "diffinsight [file]",
		Short: "Review code diffs for potential issues and suggested solutions",
		Long: `diffinsight colors a pasted or piped code diff and asks an analyzer
for potential issues and suggested solutions, which can be copied as
numbered lists.

The diff is read from the file argument, from standard input when it is
piped, or from git with --git (remaining arguments go to git diff).`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, f, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "config file (default $XDG_CONFIG_HOME/diffinsight/config.toml)")
	pf.StringVar(&f.analyzer, "analyzer", "", "analyzer to use ("+strings.Join(config.Analyzers, "|")+")")
	pf.StringVar(&f.model, "model", "", "Gemini model (default "+gemini.DefaultModel+")")
	pf.DurationVar(&f.timeout, "timeout", diffinsight.DefaultAnalysisTimeout, "analysis timeout")
	pf.StringVar(&f.theme, "theme", "", "color theme ("+strings.Join(config.Themes, "|")+")")
	pf.StringVar(&f.clipboard, "clipboard", "", "clipboard backend ("+strings.Join(config.Clipboards, "|")+")")
	pf.StringVar(&f.lang, "lang", "", "language of the diffed code, for highlighting (detected when empty)")
	pf.StringVar(&f.color, "color", "auto", "colorize output (auto|on|off)")
	pf.StringVar(&f.debug, "debug", "", "write a debug log to this file")
	pf.BoolVar(&f.noCache, "no-cache", false, "do not cache analyzer responses")
	pf.BoolVar(&f.clearResult, "clear-result", false, "hide the previous result while an analysis runs")
	pf.BoolVar(&f.git, "git", false, "read the diff from git diff")
	pf.StringVar(&f.repo, "repo", ".", "repository for --git")

	root.AddCommand(a.tuiCommand(f), a.analyzeCommand(f), a.previewCommand(f))
	return root
}

func (a *App) tuiCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Open the interactive analyzer screen",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd, f, args)
		},
	}
}

func (a *App) analyzeCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a diff and print the numbered issues and solutions",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, f, args)
		},
	}
	cmd.Flags().StringVar(&f.copy, "copy", "", "copy a list to the clipboard (issues|solutions)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format (text|json)")
	return cmd
}

func (a *App) previewCommand(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print the diff with added and removed lines colored",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPreview(cmd, f, args)
		},
	}
	cmd.Flags().IntVar(&f.width, "width", 0, "truncate and pad lines to this width (0 keeps them as they are)")
	return cmd
}

func (a *App) runTUI(cmd *cobra.Command, f *flags, args []string) error {
	ctx := cmd.Context()

	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return err
	}
	input, hint, err := a.readInput(ctx, f, args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(f.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	analyzer, closeAnalyzer, err := a.buildAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	cb, err := a.clipboard(cfg)
	if err != nil {
		return err
	}
	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return err
	}
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return err
	}

	opts := []bubbletea.ModelOption{
		bubbletea.WithTheme(theme),
		bubbletea.WithClipboard(cb),
		bubbletea.WithNotifier(logNotifier{logger: logger}),
		bubbletea.WithTimeout(cfg.AnalysisTimeout.Duration),
		bubbletea.WithLanguage(languageHint(cfg.Language, hint)),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithTokenizer(tokenizer),
		bubbletea.WithClearResultOnRun(cfg.ClearResultOnRun),
	}

	logger.Info("starting", "analyzer", cfg.Analyzer, "theme", cfg.Theme, "clipboard", cfg.Clipboard)
	run := a.RunTUI
	if run == nil {
		programOpts := []tea.ProgramOption{tea.WithAltScreen()}
		if !a.StdinIsTerminal {
			// Keys come from the terminal when the diff was piped in.
			programOpts = append(programOpts, tea.WithInputTTY())
		}
		run = func(ctx context.Context, analyzer diffinsight.Analyzer, input string, opts []bubbletea.ModelOption) error {
			return bubbletea.NewViewer(analyzer, opts...).WithProgramOptions(programOpts...).Run(ctx, input)
		}
	}
	return run(ctx, analyzer, input, opts)
}

func (a *App) runAnalyze(cmd *cobra.Command, f *flags, args []string) error {
	ctx := cmd.Context()

	label, err := copyLabel(f.copy)
	if err != nil {
		return err
	}
	if f.format != "text" && f.format != "json" {
		return fmt.Errorf("invalid --format value %q (expected text|json)", f.format)
	}
	p, err := newPrinter(f.color)
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return err
	}
	input, _, err := a.readInput(ctx, f, args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(f.debug)
	if err != nil {
		return err
	}
	defer closeLog()
	notifier := notifiers{logNotifier{logger: logger}, printNotifier{w: a.Stderr, p: p}}

	session := diffinsight.NewSession(diffinsight.WithInput(input))
	req, err := session.Begin()
	if err != nil {
		if errors.Is(err, diffinsight.ErrEmptyInput) {
			notifier.Notify(diffinsight.EmptyInputNotification())
		}
		return err
	}

	analyzer, closeAnalyzer, err := a.buildAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeAnalyzer()

	outcome := diffinsight.RunAnalysis(ctx, analyzer, req, cfg.AnalysisTimeout.Duration)
	session.Resolve(req, outcome)
	if !outcome.Succeeded() {
		logNotifier{logger: logger}.Notify(diffinsight.AnalysisFailedNotification(outcome.Err))
		return outcome.Err
	}
	notifier.Notify(diffinsight.AnalysisCompleteNotification())

	result := session.Result()
	if f.format == "json" {
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	} else {
		p.list(a.Stdout, "Potential Issues", result.Issues)
		fmt.Fprintln(a.Stdout)
		p.list(a.Stdout, "Suggested Solutions", result.Solutions)
	}

	if label == "" {
		return nil
	}
	cb, err := a.clipboard(cfg)
	if err != nil {
		return err
	}
	items := result.Issues
	if label == diffinsight.LabelSolutions {
		items = result.Solutions
	}
	if err := diffinsight.Export(cb, items); err != nil {
		notifier.Notify(diffinsight.CopyFailedNotification(label, err))
		return fmt.Errorf("copy %s: %w", strings.ToLower(label), err)
	}
	notifier.Notify(diffinsight.CopiedNotification(label))
	return nil
}

func (a *App) runPreview(cmd *cobra.Command, f *flags, args []string) error {
	renderer := charm.NewRenderer(a.Stdout)
	switch f.color {
	case "auto":
	case "on":
		renderer.SetColorProfile(termenv.TrueColor)
	case "off":
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", f.color)
	}

	cfg, err := a.loadConfig(cmd, f)
	if err != nil {
		return err
	}
	input, hint, err := a.readInput(cmd.Context(), f, args)
	if err != nil {
		return err
	}

	theme, err := lipgloss.ThemeByName(cfg.Theme)
	if err != nil {
		return err
	}
	tokenizer, err := chroma.NewTokenizer(chroma.StyleFromPalette(theme.Palette()))
	if err != nil {
		return err
	}

	out := bubbletea.Preview(input, f.width,
		bubbletea.WithTheme(theme),
		bubbletea.WithRenderer(renderer),
		bubbletea.WithLanguage(languageHint(cfg.Language, hint)),
		bubbletea.WithLanguageDetector(chroma.NewDetector()),
		bubbletea.WithTokenizer(tokenizer),
	)
	_, err = fmt.Fprintln(a.Stdout, out)
	return err
}

// loadConfig layers the config file, the environment and explicitly set
// flags, in that order, and validates the result.
func (a *App) loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	path := f.config
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	} else if _, err := os.Stat(path); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return config.Config{}, err
	}
	getenv := a.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg.ApplyEnv(getenv)

	set := cmd.Flags()
	if set.Changed("analyzer") {
		cfg.Analyzer = f.analyzer
	}
	if set.Changed("model") {
		cfg.Model = f.model
	}
	if set.Changed("timeout") {
		cfg.AnalysisTimeout = config.Duration{Duration: f.timeout}
	}
	if set.Changed("theme") {
		cfg.Theme = f.theme
	}
	if set.Changed("clipboard") {
		cfg.Clipboard = f.clipboard
	}
	if set.Changed("lang") {
		cfg.Language = f.lang
	}
	if set.Changed("no-cache") {
		cfg.Cache = !f.noCache
	}
	if set.Changed("clear-result") {
		cfg.ClearResultOnRun = f.clearResult
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// readInput returns the diff to work on and the file it came from, if any.
// With --git the arguments are passed to git diff; otherwise a single file
// argument is read, or standard input when it is piped.
func (a *App) readInput(ctx context.Context, f *flags, args []string) (input, path string, err error) {
	if f.git {
		if a.Source == nil {
			return "", "", ErrNoSource
		}
		diff, err := a.Source.Diff(ctx, f.repo, args...)
		if err != nil {
			return "", "", fmt.Errorf("read git diff: %w", err)
		}
		return diff, "", nil
	}

	switch {
	case len(args) > 1:
		return "", "", fmt.Errorf("expected at most one file, got %d", len(args))
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("read diff: %w", err)
		}
		return string(data), args[0], nil
	case a.Stdin != nil && (!a.StdinIsTerminal || len(args) == 1):
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "", nil
	default:
		return "", "", nil
	}
}

// buildAnalyzer returns the configured analyzer wrapped with logging, and a
// function releasing what it holds.
func (a *App) buildAnalyzer(ctx context.Context, cfg config.Config, logger *slog.Logger) (diffinsight.Analyzer, func(), error) {
	if a.Analyzer != nil {
		return loggingAnalyzer{inner: a.Analyzer, logger: logger}, func() {}, nil
	}

	switch cfg.Analyzer {
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("create gemini client: %w", err)
		}
		model := cfg.Model
		if model == "" {
			model = gemini.DefaultModel
		}
		var analyzer diffinsight.Analyzer = gemini.NewAnalyzer(client, model,
			gemini.WithTimeout(cfg.AnalysisTimeout.Duration))
		if cfg.Cache {
			dir := cfg.CacheDir
			if dir == "" {
				dir = fs.DefaultCacheDir()
			}
			analyzer = fs.NewAnalyzer(analyzer, dir,
				fs.WithNamespace("gemini/"+model),
				fs.WithCallTimeout(cfg.AnalysisTimeout.Duration))
			logger.Debug("response cache enabled", "dir", dir)
		}
		release := func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing gemini client", "err", err)
			}
		}
		return loggingAnalyzer{inner: analyzer, logger: logger}, release, nil
	default:
		analyzer := stub.NewAnalyzer(stub.WithDelay(cfg.StubDelay.Duration))
		return loggingAnalyzer{inner: analyzer, logger: logger}, func() {}, nil
	}
}

func (a *App) clipboard(cfg config.Config) (diffinsight.Clipboard, error) {
	if a.Clipboard != nil {
		return a.Clipboard, nil
	}
	return clipboard.New(cfg.Clipboard, a.Stderr)
}

// newLogger opens the debug log at path. Without a path logging is discarded.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := tea.LogToFile(path, "diffinsight")
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { _ = f.Close() }, nil
}

func copyLabel(list string) (string, error) {
	switch list {
	case "":
		return "", nil
	case "issues":
		return diffinsight.LabelIssues, nil
	case "solutions":
		return diffinsight.LabelSolutions, nil
	default:
		return "", fmt.Errorf("invalid --copy value %q (expected issues|solutions)", list)
	}
}

// languageHint prefers the configured language over the input file name.
func languageHint(language, path string) string {
	if language != "" {
		return language
	}
	return path
}
