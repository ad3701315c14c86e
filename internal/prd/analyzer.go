package prd

// Analyzer runs the full analysis pipeline: validation, quality evaluation,
// and execution planning over a parsed PRD. It holds only immutable
// configuration, so a single Analyzer is safe for concurrent use and
// repeated calls on identical input produce identical output.
type Analyzer struct {
	thresholds Thresholds
}

// NewAnalyzer creates an analyzer with the given evaluator thresholds.
func NewAnalyzer(t Thresholds) *Analyzer {
	return &Analyzer{thresholds: t}
}

// Analyze produces the three-section analysis for a document. The three
// sections are independent: evaluation runs even on invalid documents, and
// a detected cycle degrades planning to an empty plan without failing the
// analysis. The input document is never mutated.
func (a *Analyzer) Analyze(doc *Document) *Analysis {
	stories := doc.UserStories

	validation := Validate(stories)
	evaluation := Evaluate(stories, a.thresholds)
	planning := Plan(stories, !validation.HasError(CodeCircularDependency))

	return &Analysis{
		Validation: validation,
		Evaluation: evaluation,
		Planning:   planning,
	}
}
