// Package main provides the CLI entrypoint for wordoracle.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordoracle/internal/config"
	"github.com/verte-zerg/wordoracle/internal/oracle"
	"github.com/verte-zerg/wordoracle/internal/sampler"
	"github.com/verte-zerg/wordoracle/internal/store"
	"github.com/verte-zerg/wordoracle/internal/superdic"
	"github.com/verte-zerg/wordoracle/internal/wordlist"
)

const (
	defaultLanguage = "deutsch"
	defaultFraction = 1
	defaultNonce    = ""
)

var (
	compareLanguage  string
	compareFraction  int
	compareNonce     string
	compareFile      string
	compareNoHistory bool
	compareVerbose   bool

	fetchLanguage string

	historyLanguage string
	historyLast     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordoracle",
		Short:         "Score a candidate word list against a reference dictionary, reporting aggregates only",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCompareCmd,
	}

	rootCmd.Flags().StringVar(&compareLanguage, "language", defaultLanguage, "reference dictionary language")
	rootCmd.Flags().IntVar(&compareFraction, "fraction", defaultFraction, "include only 1/N of words by hash (1 = all)")
	rootCmd.Flags().StringVar(&compareNonce, "nonce", defaultNonce, "salt for hash-based sampling")
	rootCmd.Flags().StringVar(&compareFile, "candidate-file", "", "read candidate words from a file instead of stdin")
	rootCmd.Flags().BoolVar(&compareNoHistory, "no-history", false, "do not record this run in the history database")
	rootCmd.Flags().BoolVar(&compareVerbose, "verbose", false, "always print progress to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runCompareCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "language", &compareLanguage, fileCfg.Oracle.Language)
	applyIntConfig(cmd, "fraction", &compareFraction, fileCfg.Oracle.Fraction)
	applyStringConfig(cmd, "nonce", &compareNonce, fileCfg.Oracle.Nonce)

	filter, err := sampler.New(compareNonce, compareFraction)
	if err != nil {
		return fmt.Errorf("--fraction must be >= 1, got %d", compareFraction)
	}
	if !superdic.IsSupported(compareLanguage) {
		return fmt.Errorf("unsupported language %q (available: %s)",
			compareLanguage, strings.Join(superdic.Supported(), ", "))
	}

	ctx := context.Background()
	dict, err := superdic.Fetch(ctx, compareLanguage, config.DefaultDictionaryCacheDir())
	if err != nil {
		return fmt.Errorf("failed to fetch dictionary: %w", err)
	}
	if dict.Cached {
		progressf("Using cached dictionary %s\n", filepath.Base(dict.Path))
	} else {
		progressf("Downloaded dictionary %s\n", filepath.Base(dict.Path))
	}

	progressf("Loading dictionary from %s...", filepath.Base(dict.Path))
	reference, err := superdic.LoadSet(dict.Path)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}
	progressf(" %d words.\n", len(reference))

	var candidate wordlist.Set
	if compareFile != "" {
		progressf("Reading candidate words from %s...", compareFile)
		candidate, err = wordlist.ReadSetFile(compareFile)
	} else {
		progressf("Reading candidate words from stdin...")
		candidate, err = wordlist.ReadSet(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read candidate words: %w", err)
	}
	progressf(" %d words.\n", len(candidate))

	result := oracle.Compare(reference, candidate, filter, compareLanguage)
	if err := writeJSON(cmd, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if !compareNoHistory {
		if err := recordRun(ctx, result); err != nil {
			logErrf("failed to record run: %v\n", err)
		}
	}
	return nil
}

func recordRun(ctx context.Context, result oracle.Result) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	_, err = st.InsertRun(ctx, time.Now(), result)
	return err
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported dictionary languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	for _, lang := range superdic.Supported() {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Pre-download reference dictionaries into the cache",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchLanguage, "language", defaultLanguage, "language code or 'all'")
	return cmd
}

func runFetchCmd(_ *cobra.Command, _ []string) error {
	langs, err := resolveFetchLangs(fetchLanguage)
	if err != nil {
		return err
	}
	ctx := context.Background()
	cacheDir := config.DefaultDictionaryCacheDir()
	for _, lang := range langs {
		dict, err := superdic.Fetch(ctx, lang, cacheDir)
		if err != nil {
			return fmt.Errorf("failed to fetch %s dictionary: %w", lang, err)
		}
		if dict.Cached {
			logErrf("Using cached dictionary %s\n", filepath.Base(dict.Path))
		} else {
			logErrf("Downloaded dictionary %s\n", filepath.Base(dict.Path))
		}
	}
	return nil
}

func resolveFetchLangs(lang string) ([]string, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return nil, fmt.Errorf("--language must not be empty")
	}
	if lang == "all" {
		return superdic.Supported(), nil
	}
	if !superdic.IsSupported(lang) {
		return nil, fmt.Errorf("unsupported language %q (available: %s)",
			lang, strings.Join(superdic.Supported(), ", "))
	}
	return []string{lang}, nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past comparison runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLanguage, "language", "", "language filter")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	runs, err := st.ListRuns(context.Background(), historyLanguage, historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		logErrln("No runs recorded yet.")
		return nil
	}

	headers, rows := historyRows(runs)
	out := cmd.OutOrStdout()
	if isTerminalWriter(out) {
		if _, err := fmt.Fprintln(out, renderTable(headers, rows)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(out, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func historyRows(runs []store.Run) ([]string, [][]string) {
	headers := []string{"date", "language", "fraction", "ref", "cand", "tp", "fp", "fn", "recall%", "precision%"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Result.Language,
			fmt.Sprintf("%d", run.Result.Fraction),
			fmt.Sprintf("%d", run.Result.ReferenceSampled),
			fmt.Sprintf("%d", run.Result.CandidateSampled),
			fmt.Sprintf("%d", run.Result.TruePositives),
			fmt.Sprintf("%d", run.Result.FalsePositives),
			fmt.Sprintf("%d", run.Result.FalseNegatives),
			fmt.Sprintf("%.4f", run.Result.RecallPct),
			fmt.Sprintf("%.4f", run.Result.PrecisionPct),
		})
	}
	return headers, rows
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordoracle configuration
# Uncomment a value to enable it. CLI flags override config values.

[oracle]
# language = %q    # Reference dictionary language
# fraction = %d            # Include 1/N of words by hash (1 = all)
# nonce = %q               # Salt for hash-based sampling
`,
		defaultLanguage,
		defaultFraction,
		defaultNonce,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func isTerminalWriter(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// progressf writes progress notes to stderr. Suppressed when stderr is
// not a terminal unless --verbose, so batch pipelines stay quiet.
func progressf(format string, args ...any) {
	if !compareVerbose && !isTerminalWriter(os.Stderr) {
		return
	}
	logErrf(format, args...)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
