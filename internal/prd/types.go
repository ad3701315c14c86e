// Package prd implements the PRD analysis engine: structural validation,
// quality scoring, and execution planning over a user-story dependency graph.
package prd

// DefaultPriority is assigned to stories that declare no priority.
// Lower values are more urgent, so an absent priority sorts last.
const DefaultPriority = 1 << 30

// Story is a single user story from a PRD document.
type Story struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Repo               string   `json:"repo"`
	Priority           int      `json:"priority"`
	Dependencies       []string `json:"dependencies"`
	AcceptanceCriteria []string `json:"acceptanceCriteria"`
}

// Document is a normalized PRD: the userStories array with all optional
// fields filled in.
type Document struct {
	UserStories []Story `json:"userStories"`
}

// Severity classifies a validation finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies a validation finding kind.
type Code string

const (
	// Errors (block acceptance).
	CodeDuplicateID        Code = "DUPLICATE_ID"
	CodeMissingReference   Code = "MISSING_REFERENCE"
	CodeCircularDependency Code = "CIRCULAR_DEPENDENCY"

	// Warnings (never block).
	CodeEmptyAcceptanceCriteria Code = "EMPTY_ACCEPTANCE_CRITERIA"
	CodeEmptyDescription        Code = "EMPTY_DESCRIPTION"
	CodeMissingRepo             Code = "MISSING_REPO"
)

// ValidationError is a single validation finding, error or warning.
type ValidationError struct {
	Path     string   `json:"path"`
	Code     Code     `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ValidationResult reports structural integrity of a PRD.
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

// HasError reports whether any error with the given code was found.
func (r ValidationResult) HasError(code Code) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Category classifies a quality issue.
type Category string

const (
	CategoryClarity      Category = "clarity"
	CategoryDependencies Category = "dependencies"
	CategoryFeasibility  Category = "feasibility"
)

// QualityIssue is an actionable quality finding with its score impact.
type QualityIssue struct {
	Category   Category `json:"category"`
	StoryID    string   `json:"story_id,omitempty"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
	Impact     int      `json:"impact"`
}

// QualityBreakdown holds the three weighted sub-scores.
type QualityBreakdown struct {
	Clarity      int `json:"clarity"`
	Dependencies int `json:"dependencies"`
	Feasibility  int `json:"feasibility"`
}

// Grade is the letter bucket derived from the quality score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// QualityResult reports document quality on a 0-100 scale.
type QualityResult struct {
	Score     int              `json:"score"`
	Grade     Grade            `json:"grade"`
	Breakdown QualityBreakdown `json:"breakdown"`
	Issues    []QualityIssue   `json:"issues"`
}

// ExecutionPhase is one layer of the topological ordering. Stories within a
// phase are mutually independent by construction.
type ExecutionPhase struct {
	PhaseNumber    int      `json:"phase_number"`
	Stories        []string `json:"stories"`
	CanParallelize bool     `json:"can_parallelize"`
	Rationale      string   `json:"rationale"`
}

// PlanningResult is the deterministic execution plan for an acyclic PRD.
// For cyclic input all collections are empty and a single recommendation
// explains why.
type PlanningResult struct {
	ExecutionOrder               []string         `json:"execution_order"`
	Phases                       []ExecutionPhase `json:"phases"`
	CriticalPath                 []string         `json:"critical_path"`
	CriticalPathLength           int              `json:"critical_path_length"`
	ParallelizationOpportunities [][]string       `json:"parallelization_opportunities"`
	Recommendations              []string         `json:"recommendations"`
}

// Analysis is the complete three-section engine response.
type Analysis struct {
	Validation ValidationResult `json:"validation"`
	Evaluation QualityResult    `json:"evaluation"`
	Planning   PlanningResult   `json:"planning"`
}
