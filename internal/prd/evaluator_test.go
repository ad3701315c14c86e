package prd

import (
	"testing"
)

func scoredStory(id string, priority int, deps ...string) Story {
	if deps == nil {
		deps = []string{}
	}
	return Story{
		ID:                 id,
		Title:              "As a user, I want " + id + " to work",
		Description:        "A sufficiently detailed description of the expected behavior of " + id,
		Repo:               "backend",
		Priority:           priority,
		Dependencies:       deps,
		AcceptanceCriteria: []string{"criterion one holds", "criterion two holds"},
	}
}

func TestEvaluate_EmptyDocument(t *testing.T) {
	result := Evaluate(nil, DefaultThresholds())

	if result.Score != 0 {
		t.Errorf("Score = %d, want 0", result.Score)
	}
	if result.Grade != GradeF {
		t.Errorf("Grade = %s, want F", result.Grade)
	}
	if len(result.Issues) != 1 || result.Issues[0].Impact != 100 {
		t.Errorf("Issues = %+v, want one issue with impact 100", result.Issues)
	}
}

func TestEvaluate_CleanDocument(t *testing.T) {
	result := Evaluate([]Story{
		scoredStory("US-001", 5),
		scoredStory("US-002", 5, "US-001"),
	}, DefaultThresholds())

	if result.Score != 100 {
		t.Errorf("Score = %d, want 100 (issues: %+v)", result.Score, result.Issues)
	}
	if result.Grade != GradeA {
		t.Errorf("Grade = %s, want A", result.Grade)
	}
	want := QualityBreakdown{Clarity: 100, Dependencies: 100, Feasibility: 100}
	if result.Breakdown != want {
		t.Errorf("Breakdown = %+v, want %+v", result.Breakdown, want)
	}
	if len(result.Issues) != 0 {
		t.Errorf("Issues = %+v, want none", result.Issues)
	}
}

func TestEvaluate_MissingRepo(t *testing.T) {
	story := scoredStory("US-001", 5)
	story.Repo = ""
	result := Evaluate([]Story{story}, DefaultThresholds())

	if result.Breakdown.Feasibility != 90 {
		t.Errorf("Feasibility = %d, want 90", result.Breakdown.Feasibility)
	}
	// round(0.4*100 + 0.3*100 + 0.3*90) = 97
	if result.Score != 97 {
		t.Errorf("Score = %d, want 97", result.Score)
	}
	if len(result.Issues) != 1 || result.Issues[0].Category != CategoryFeasibility {
		t.Errorf("Issues = %+v, want one feasibility issue", result.Issues)
	}
}

func TestEvaluate_CycleCostsDependencies(t *testing.T) {
	result := Evaluate([]Story{
		scoredStory("US-001", 5, "US-002"),
		scoredStory("US-002", 5, "US-001"),
	}, DefaultThresholds())

	if result.Breakdown.Dependencies != 60 {
		t.Errorf("Dependencies = %d, want 60", result.Breakdown.Dependencies)
	}
	// round(0.4*100 + 0.3*60 + 0.3*100) = 88
	if result.Score != 88 {
		t.Errorf("Score = %d, want 88", result.Score)
	}
	if result.Grade != GradeB {
		t.Errorf("Grade = %s, want B", result.Grade)
	}
	if len(result.Issues) != 1 || result.Issues[0].Impact != DefaultThresholds().CyclePenalty {
		t.Errorf("Issues = %+v, want one cycle issue", result.Issues)
	}
}

func TestEvaluate_PriorityInversion(t *testing.T) {
	urgent := scoredStory("US-002", 1, "US-001")
	lazy := scoredStory("US-001", 5)
	result := Evaluate([]Story{lazy, urgent}, DefaultThresholds())

	if result.Breakdown.Feasibility != 95 {
		t.Errorf("Feasibility = %d, want 95", result.Breakdown.Feasibility)
	}
	if len(result.Issues) != 1 || result.Issues[0].StoryID != "US-002" {
		t.Errorf("Issues = %+v, want one inversion issue on US-002", result.Issues)
	}
}

func TestEvaluate_VagueTitles(t *testing.T) {
	tests := []struct {
		title string
		vague bool
	}{
		{"As a user, I want to log in", false},
		{"Fix stuff", true}, // too short and vague
		{"Improve various things across the app", true},
		{"Implement the payment flow", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			story := scoredStory("US-001", 5)
			story.Title = tt.title
			result := Evaluate([]Story{story}, DefaultThresholds())
			gotIssue := len(result.Issues) > 0
			if gotIssue != tt.vague {
				t.Errorf("title %q: issue = %v, want %v (%+v)", tt.title, gotIssue, tt.vague, result.Issues)
			}
		})
	}
}

func TestEvaluate_IssuesSortedByImpact(t *testing.T) {
	short := scoredStory("US-001", 5)
	short.Description = "too short"
	vague := scoredStory("US-002", 5)
	vague.Title = "Fix stuff"

	result := Evaluate([]Story{vague, short}, DefaultThresholds())

	if len(result.Issues) != 2 {
		t.Fatalf("got %d issues, want 2: %+v", len(result.Issues), result.Issues)
	}
	if result.Issues[0].Impact < result.Issues[1].Impact {
		t.Errorf("issues not sorted by descending impact: %+v", result.Issues)
	}
	if result.Issues[0].StoryID != "US-001" {
		t.Errorf("issues[0].StoryID = %s, want US-001 (impact 10 outranks 5)", result.Issues[0].StoryID)
	}
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeA}, {90, GradeA},
		{89, GradeB}, {80, GradeB},
		{79, GradeC}, {70, GradeC},
		{69, GradeD}, {60, GradeD},
		{59, GradeF}, {0, GradeF},
	}

	for _, tt := range tests {
		if got := gradeFor(tt.score); got != tt.want {
			t.Errorf("gradeFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
