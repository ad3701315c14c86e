// Package render formats analysis results for the terminal.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"prdflight/internal/prd"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	titleColor   = color.New(color.FgMagenta, color.Bold)
)

// Title prints a section header.
func Title(format string, args ...interface{}) {
	titleColor.Printf("🛫 "+format+"\n", args...)
}

// Info prints an informational line.
func Info(format string, args ...interface{}) {
	infoColor.Printf(format+"\n", args...)
}

// Analysis prints the full three-section report.
func Analysis(a *prd.Analysis) {
	Validation(a.Validation)
	fmt.Println()
	Evaluation(a.Evaluation)
	fmt.Println()
	Planning(a.Planning)
}

// Validation prints structural findings.
func Validation(v prd.ValidationResult) {
	Title("Validation")
	if v.IsValid {
		successColor.Println("✅ PRD is structurally valid")
	} else {
		errorColor.Printf("❌ PRD is invalid: %d error(s)\n", len(v.Errors))
	}

	if len(v.Errors) > 0 || len(v.Warnings) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Severity", "Code", "Path", "Message"})
		for _, e := range v.Errors {
			tw.AppendRow(table.Row{e.Severity, e.Code, e.Path, e.Message})
		}
		for _, w := range v.Warnings {
			tw.AppendRow(table.Row{w.Severity, w.Code, w.Path, w.Message})
		}
		tw.Render()
	}
}

// Evaluation prints the quality score, breakdown and ranked issues.
func Evaluation(q prd.QualityResult) {
	Title("Quality")
	gradeColor(q.Grade).Printf("Score %d/100 (grade %s)\n", q.Score, q.Grade)
	fmt.Printf("   clarity %d · dependencies %d · feasibility %d\n",
		q.Breakdown.Clarity, q.Breakdown.Dependencies, q.Breakdown.Feasibility)

	if len(q.Issues) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Impact", "Category", "Story", "Issue"})
		for _, issue := range q.Issues {
			tw.AppendRow(table.Row{-issue.Impact, issue.Category, issue.StoryID, issue.Issue})
		}
		tw.Render()

		fmt.Println("Suggestions:")
		for _, issue := range q.Issues {
			fmt.Printf("   - %s\n", issue.Suggestion)
		}
	}
}

// Planning prints the execution plan.
func Planning(p prd.PlanningResult) {
	Title("Execution plan")
	if len(p.Phases) == 0 {
		warnColor.Println("⚠️  No plan produced")
	} else {
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Phase", "Stories", "Parallel", "Rationale"})
		for _, phase := range p.Phases {
			tw.AppendRow(table.Row{
				phase.PhaseNumber,
				strings.Join(phase.Stories, ", "),
				phase.CanParallelize,
				phase.Rationale,
			})
		}
		tw.Render()

		fmt.Printf("Execution order: %s\n", strings.Join(p.ExecutionOrder, " -> "))
		if len(p.CriticalPath) > 0 {
			fmt.Printf("Critical path (%d stories): %s\n",
				p.CriticalPathLength, strings.Join(p.CriticalPath, " -> "))
		}
	}

	if len(p.Recommendations) > 0 {
		fmt.Println("Recommendations:")
		for _, rec := range p.Recommendations {
			fmt.Printf("   💡 %s\n", rec)
		}
	}
}

func gradeColor(g prd.Grade) *color.Color {
	switch g {
	case prd.GradeA, prd.GradeB:
		return successColor
	case prd.GradeC:
		return warnColor
	default:
		return errorColor
	}
}
