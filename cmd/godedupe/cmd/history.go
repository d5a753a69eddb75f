package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godedupe/internal/config"
	"github.com/dbsmedya/godedupe/internal/journal"
	"github.com/dbsmedya/godedupe/internal/logger"
	"github.com/dbsmedya/godedupe/internal/report"
)

var (
	historyLimit int
	historyRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs and their disposals",
	Long: `History lists recorded runs from the journal, newest first. With
--run it shows every file a single run moved to trash.

Example:
  godedupe history
  godedupe history --run 0b5e8a1c-1111-2222-3333-444455556666`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20,
		"Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyRun, "run", "",
		"Show the disposals of one run by its id")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.Workers, overrides.NoNameMatch)

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	j, err := journal.Open(cfg.Journal.Path, log)
	if err != nil {
		return fmt.Errorf("failed to open run journal: %w", err)
	}
	defer j.Close()

	ctx := context.Background()

	if historyRun != "" {
		entries, err := j.Disposals(ctx, historyRun)
		if err != nil {
			return fmt.Errorf("failed to read disposals: %w", err)
		}
		if len(entries) == 0 {
			cmd.Printf("No disposals recorded for run %s\n", historyRun)
			return nil
		}
		for _, e := range entries {
			cmd.Printf("%s  %s (%s)\n", e.DisposedAt.Local().Format("2006-01-02 15:04:05"), e.Path, e.Reason)
		}
		return nil
	}

	runs, err := j.ListRuns(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read run history: %w", err)
	}

	report.NewRenderer(cmd.OutOrStdout(), true).RenderHistory(runs)
	return nil
}
