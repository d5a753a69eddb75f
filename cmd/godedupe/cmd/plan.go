package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/godedupe/internal/dedupe"
	"github.com/dbsmedya/godedupe/internal/report"
)

var (
	planRecursive bool
	planProtect   string
)

var planCmd = &cobra.Command{
	Use:   "plan <directory>",
	Short: "Preview what a scan would trash, without touching anything",
	Long: `Plan runs the full detection pipeline (inventory, fingerprinting,
grouping, retention) and prints every group with its keep and trash
verdicts. No files are moved and nothing is journaled.

Example:
  godedupe plan /srv/media -r`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVarP(&planRecursive, "recursive", "r", false,
		"Scan subdirectories as well")
	planCmd.Flags().StringVar(&planProtect, "protect", "",
		"Directory whose files always survive (implies --recursive)")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	root := args[0]

	cfg, log, err := loadRunConfig(planRecursive, planProtect)
	if err != nil {
		return err
	}
	defer log.Sync()

	orch, err := dedupe.NewOrchestrator(cfg, root, nil, nil, log)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - stopping...")
		cancel()
	}()

	plan, err := orch.BuildPlan(ctx)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	report.NewRenderer(cmd.OutOrStdout(), true).RenderPlan(plan)
	return nil
}
