// Package main provides CLI commands for prdflight
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"prdflight/internal/config"
	"prdflight/internal/db"
	"prdflight/internal/prd"
	"prdflight/internal/render"
	"prdflight/pkg/telemetry"
)

func analyzeCmd(cfg *config.Config) *cobra.Command {
	var (
		asJSON bool
		save   bool
	)

	command := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Run the full analysis pipeline on a PRD document",
		Long: `Validate, score, and plan a PRD document.

The three sections are independent: quality scoring runs even on invalid
documents, and a dependency cycle degrades planning to an empty plan rather
than failing the analysis.

Examples:
  prdflight analyze prd.json
  prdflight analyze prd.json --json
  prdflight analyze prd.json --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			ctx, span := otel.Tracer("prdflight").Start(cmd.Context(), "prd.analyze")
			span.SetAttributes(
				attribute.String("prd.source", args[0]),
				attribute.Int("prd.stories", len(doc.UserStories)),
			)
			start := time.Now()
			analysis := prd.NewAnalyzer(cfg.Thresholds).Analyze(doc)
			duration := time.Since(start)
			span.SetAttributes(
				attribute.Bool("prd.valid", analysis.Validation.IsValid),
				attribute.Int("prd.score", analysis.Evaluation.Score),
			)
			span.End()

			if cfg.Verbose {
				render.Info("Analyzed %d stories in %s", len(doc.UserStories), duration.Round(time.Microsecond))
			}

			telemetry.RecordAnalysis(ctx, analysis.Validation.IsValid,
				string(analysis.Evaluation.Grade), analysis.Evaluation.Score, duration)
			for _, e := range analysis.Validation.Errors {
				telemetry.RecordValidationError(ctx, string(e.Code))
			}
			if analysis.Validation.HasError(prd.CodeCircularDependency) {
				telemetry.RecordCycleDetected(ctx)
			}

			if save {
				store, err := openStore(cfg)
				if err != nil {
					return err
				}
				defer store.Close()

				report, err := prd.NewWriter(store).Write(args[0], doc, analysis)
				if err != nil {
					return fmt.Errorf("saving report: %w", err)
				}
				telemetry.RecordReportSaved(ctx)
				defer render.Info("💾 Saved report %s", report.ID)
			}

			return printResult(analysis, asJSON, render.Analysis)
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "Emit the raw analysis JSON")
	command.Flags().BoolVar(&save, "save", false, "Persist the report to the history store")
	return command
}

func validateCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check structural integrity of a PRD document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			result := prd.Validate(doc.UserStories)
			return printResult(result, asJSON, render.Validation)
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "Emit the raw validation JSON")
	return command
}

func scoreCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "score <file>",
		Short: "Score PRD quality across clarity, dependencies, and feasibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			result := prd.Evaluate(doc.UserStories, cfg.Thresholds)
			return printResult(result, asJSON, render.Evaluation)
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "Emit the raw evaluation JSON")
	return command
}

func planCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "plan <file>",
		Short: "Compute the phased execution plan for a PRD document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(args[0])
			if err != nil {
				return err
			}

			validation := prd.Validate(doc.UserStories)
			result := prd.Plan(doc.UserStories, !validation.HasError(prd.CodeCircularDependency))
			return printResult(result, asJSON, render.Planning)
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "Emit the raw plan JSON")
	return command
}

func historyCmd(cfg *config.Config) *cobra.Command {
	command := &cobra.Command{
		Use:   "history",
		Short: "List saved analysis reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			reports, err := store.ListReports(cfg.HistoryLimit)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				fmt.Println("No saved reports; run `prdflight analyze <file> --save` first")
				return nil
			}

			render.Title("Report history")
			for _, r := range reports {
				verdict := "valid"
				if !r.IsValid {
					verdict = "invalid"
				}
				fmt.Printf("   %s  %s  %d stories  %d/100 (%s, %s)  %s\n",
					r.ID, time.Unix(r.CreatedAt, 0).Format("2006-01-02 15:04"),
					r.StoryCount, r.Score, r.Grade, verdict, r.Source)
			}
			return nil
		},
	}

	command.AddCommand(historyShowCmd(cfg))
	return command
}

func historyShowCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	command := &cobra.Command{
		Use:   "show <report-id>",
		Short: "Replay a saved analysis report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := store.GetReport(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				fmt.Println(string(report.Payload))
				return nil
			}

			var analysis prd.Analysis
			if err := json.Unmarshal(report.Payload, &analysis); err != nil {
				return fmt.Errorf("decoding report %s: %w", report.ID, err)
			}
			render.Info("Report %s for %s", report.ID, report.Source)
			render.Analysis(&analysis)
			return nil
		},
	}

	command.Flags().BoolVar(&asJSON, "json", false, "Emit the stored report JSON")
	return command
}

// loadDocument reads and parses a PRD file. Parse failures are terminal and
// become process errors; validation findings never do.
func loadDocument(path string) (*prd.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading PRD: %w", err)
	}
	doc, err := prd.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing PRD %s: %w", path, err)
	}
	return doc, nil
}

func openStore(cfg *config.Config) (*db.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	store, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		store.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return store, nil
}

// printResult renders a section either as indented JSON or via the given
// pretty printer.
func printResult[T any](result T, asJSON bool, pretty func(T)) error {
	if asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}
	pretty(result)
	return nil
}
