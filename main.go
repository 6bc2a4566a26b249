package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/muhammadolammi/resumerefresher/internal/config"
	"github.com/muhammadolammi/resumerefresher/internal/document"
	"github.com/muhammadolammi/resumerefresher/internal/refresher"
)

// Exit codes, one per failure kind, so the scheduler's run log tells the
// categories apart.
const (
	exitFailure  = 1
	exitNotFound = 2
	exitFormat   = 3
	exitWrite    = 4
)

var (
	cfg        = config.Default()
	configFile string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "resume-refresher",
	Short: "Refresh the summary and keywords section of a resume document",
	Long: `resume-refresher rewrites the Summary/Keywords section of a resume in
place: it extracts keyword tokens from the document's own text (or from a
local source file), rebuilds the section and saves the document back to the
same path, snapshotting the previous revision first.

It is meant to be triggered by a scheduler (for example a CI cron job) that
commits the refreshed file afterwards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if configFile != "" {
			if err := cfg.ApplyFile(configFile); err != nil {
				return err
			}
		}
		applyFlagOverrides(cmd)
		return cfg.Validate()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRefresh,
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the extracted keyword set without modifying the document",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := refresher.New(cfg, logger)
		kws, err := svc.Keywords(cmd.Context())
		if err != nil {
			return err
		}
		for _, kw := range kws {
			fmt.Println(kw)
		}
		return nil
	},
}

// Flags that override env/file configuration only when the user set them.
var flagVals struct {
	resume     string
	backupDir  string
	backupKeep int
	source     string
	minLength  int
	limit      int
	headings   []string
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagVals.resume, "resume", "r", "", "path to the resume document (env RESUME_PATH)")
	pf.StringVar(&flagVals.backupDir, "backup-dir", "", "directory for pre-write snapshots, empty disables (env BACKUP_DIR)")
	pf.IntVar(&flagVals.backupKeep, "backup-keep", 0, "how many snapshots to retain, 0 disables pruning")
	pf.StringVar(&flagVals.source, "source", "", "derive keywords from this local file (.txt, .md, .docx, .pdf) instead of the resume body")
	pf.IntVar(&flagVals.minLength, "min-length", 0, "minimum keyword token length")
	pf.IntVar(&flagVals.limit, "limit", 0, "maximum number of keywords")
	pf.StringSliceVar(&flagVals.headings, "heading", nil, "section marker labels (repeatable)")
	pf.StringVarP(&configFile, "config", "c", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "compute the rewrite but do not back up or save")

	rootCmd.AddCommand(keywordsCmd)
}

// applyFlagOverrides copies flags the user actually set over the current
// configuration. Precedence: defaults < env < config file < flags.
func applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("resume") {
		cfg.ResumePath = flagVals.resume
	}
	if f.Changed("backup-dir") {
		cfg.BackupDir = flagVals.backupDir
	}
	if f.Changed("backup-keep") {
		cfg.BackupKeep = flagVals.backupKeep
	}
	if f.Changed("source") {
		cfg.SourcePath = flagVals.source
	}
	if f.Changed("min-length") {
		cfg.MinKeywordLength = flagVals.minLength
	}
	if f.Changed("limit") {
		cfg.KeywordLimit = flagVals.limit
	}
	if f.Changed("heading") {
		cfg.Headings = flagVals.headings
	}
}

func runRefresh(cmd *cobra.Command, args []string) error {
	svc := refresher.New(cfg, logger)
	report, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}

	if report.DryRun {
		fmt.Printf("dry run, would update %s\n", report.Path)
	} else {
		fmt.Printf("updated %s\n", report.Path)
	}
	fmt.Printf("keywords (%d): %v\n", len(report.Keywords), report.Keywords)
	if report.BackupPath != "" {
		fmt.Printf("backup: %s\n", report.BackupPath)
	}
	return nil
}

func main() {
	_ = godotenv.Load()
	cfg.FromEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, document.ErrNotFound):
		return exitNotFound
	case errors.Is(err, document.ErrFormat):
		return exitFormat
	case errors.Is(err, document.ErrWrite):
		return exitWrite
	default:
		return exitFailure
	}
}
