// Package main provides the CLI entrypoint for flowkeys.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/flowkeys/internal/config"
	"github.com/verte-zerg/flowkeys/internal/generator"
	"github.com/verte-zerg/flowkeys/internal/logging"
	"github.com/verte-zerg/flowkeys/internal/stats"
	"github.com/verte-zerg/flowkeys/internal/store"
	"github.com/verte-zerg/flowkeys/internal/tui"
	"github.com/verte-zerg/flowkeys/internal/wordlist"
)

const (
	defaultDuration = 30
	defaultWords    = 100
	defaultCaps     = 0.0
	defaultPunct    = 0.0
)

const defaultPunctSet = ".,!?"

type testConfig struct {
	Duration int
	Words    int
	Wordlist string
	CapsPct  float64
	PunctPct float64
	PunctSet string
	Theme    string
}

var (
	testDuration int
	testWords    int
	testWordlist string
	testCaps     float64
	testPunct    float64
	testPunctSet string
	uiTheme      string

	logDebug bool
	logFile  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "flowkeys",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().IntVar(&testDuration, "duration", defaultDuration, "test length in seconds (15, 30, 60 or 120)")
	rootCmd.Flags().IntVar(&testWords, "words", defaultWords, "words per test")
	rootCmd.Flags().StringVar(&testWordlist, "wordlist", "", "word list file, one word per line (default: built-in English)")
	rootCmd.Flags().Float64Var(&testCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&testPunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&testPunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().StringVar(&uiTheme, "theme", "", "color theme: dark or light (default: detect)")
	rootCmd.PersistentFlags().BoolVar(&logDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path (default: $XDG_STATE_HOME/flowkeys/flowkeys.log)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("flowkeys needs an interactive terminal (use 'flowkeys replay' for scripted runs)")
	}

	cfg, fileCfg, err := loadTestConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := tui.Options{Logger: logger}
	st, err := store.Open(config.DefaultPrefsPath())
	if err != nil {
		logger.Warn("preferences unavailable", zap.Error(err))
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.Warn("failed to close preferences", zap.Error(cerr))
			}
		}()
		applyStoredPrefs(cmd, st, fileCfg, &cfg, logger)
		opts.Prefs = st
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := loadWordPool(cfg.Wordlist)
	if err != nil {
		return err
	}

	opts.Pool = words
	opts.Count = cfg.Words
	opts.Duration = cfg.Duration
	opts.Gen = generator.New()
	opts.GenOpts = generator.Options{
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	}
	opts.Theme = cfg.Theme

	logger.Debug("starting test UI",
		zap.Int("duration", cfg.Duration),
		zap.Int("words", cfg.Words),
		zap.Int("pool", len(words)),
		zap.String("theme", cfg.Theme),
	)

	model := tui.NewModel(opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if result, ok := model.LastResult(); ok {
		if err := stats.RenderReport(cmd.OutOrStdout(), result); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// loadTestConfig resolves flags over environment over config file.
func loadTestConfig(cmd *cobra.Command) (testConfig, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return testConfig{}, fileCfg, fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg, err = config.LoadEnv(fileCfg)
	if err != nil {
		return testConfig{}, fileCfg, fmt.Errorf("failed to load environment: %w", err)
	}

	applyIntConfig(cmd, "duration", &testDuration, fileCfg.Test.Duration)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)
	applyStringConfig(cmd, "wordlist", &testWordlist, fileCfg.Test.Wordlist)
	applyFloatConfig(cmd, "caps", &testCaps, fileCfg.Test.CapsPct)
	applyFloatConfig(cmd, "punct", &testPunct, fileCfg.Test.PunctPct)
	applyStringConfig(cmd, "punct-set", &testPunctSet, fileCfg.Test.PunctSet)
	applyStringConfig(cmd, "theme", &uiTheme, fileCfg.UI.Theme)

	return testConfig{
		Duration: testDuration,
		Words:    testWords,
		Wordlist: testWordlist,
		CapsPct:  testCaps,
		PunctPct: testPunct,
		PunctSet: testPunctSet,
		Theme:    strings.ToLower(strings.TrimSpace(uiTheme)),
	}, fileCfg, nil
}

type prefReader interface {
	GetPref(ctx context.Context, key string) (string, bool, error)
}

// applyStoredPrefs fills settings nobody configured explicitly from the
// values remembered by the previous run.
func applyStoredPrefs(cmd *cobra.Command, prefs prefReader, fileCfg config.FileConfig, cfg *testConfig, logger *zap.Logger) {
	ctx := context.Background()
	if !cmd.Flags().Changed("theme") && fileCfg.UI.Theme == nil {
		if v, ok, err := prefs.GetPref(ctx, store.PrefTheme); err != nil {
			logger.Warn("failed to read preference", zap.String("key", store.PrefTheme), zap.Error(err))
		} else if ok {
			switch v {
			case tui.ThemeDark, tui.ThemeLight:
				cfg.Theme = v
			default:
				logger.Warn("ignoring stored theme", zap.String("value", v))
			}
		}
	}
	if !cmd.Flags().Changed("duration") && fileCfg.Test.Duration == nil {
		v, ok, err := prefs.GetPref(ctx, store.PrefDuration)
		if err != nil {
			logger.Warn("failed to read preference", zap.String("key", store.PrefDuration), zap.Error(err))
			return
		}
		if !ok {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil || !slices.Contains(tui.Durations, n) {
			logger.Warn("ignoring stored duration", zap.String("value", v))
			return
		}
		cfg.Duration = n
	}
}

func newLogger() (*zap.Logger, error) {
	level := config.LogLevel("info")
	if logDebug {
		level = "debug"
	}
	path := logFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	logger, err := logging.New(logging.Options{Path: path, Level: level})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return logger, nil
}

func loadWordPool(path string) ([]string, error) {
	if path == "" {
		return wordlist.Default(), nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	return words, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless a config exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# flowkeys configuration
# Uncomment a value to enable it. Environment variables (FLOWKEYS_*) and
# CLI flags override config values.

[test]
# duration = %d           # Test length in seconds: 15, 30, 60 or 120
# words = %d              # Words per test
# wordlist = ""           # Word list file; empty uses the built-in list
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q          # Punctuation set

[ui]
# theme = "dark"          # dark or light; unset detects the terminal background
`,
		defaultDuration,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
	)
}

func validateConfig(cfg testConfig) error {
	if !slices.Contains(tui.Durations, cfg.Duration) {
		return fmt.Errorf("--duration must be one of %v", tui.Durations)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	switch cfg.Theme {
	case "", tui.ThemeDark, tui.ThemeLight:
	default:
		return fmt.Errorf("--theme must be %q or %q", tui.ThemeDark, tui.ThemeLight)
	}
	return nil
}
