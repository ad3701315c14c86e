// Package main provides the entry point for the prdflight binary
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prdflight/internal/config"
	"prdflight/pkg/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	shutdown := telemetry.MustInit(ctx, nil)
	defer shutdown(ctx)

	root := &cobra.Command{
		Use:   "prdflight",
		Short: "Analyze PRD documents before dispatching them to agent pools",
		Long: `prdflight validates, scores, and plans a Product Requirements Document.

A PRD is a JSON document with a userStories array. prdflight checks its
structural integrity (duplicate ids, missing references, dependency cycles),
scores its quality, and computes a deterministic execution plan: phases,
parallelization groups, and the critical path.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		analyzeCmd(cfg),
		validateCmd(cfg),
		scoreCmd(cfg),
		planCmd(cfg),
		historyCmd(cfg),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
