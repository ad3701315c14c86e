package prd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Category weights and grade cutoffs are contract; see Thresholds for the
// tunable parts.
const (
	weightClarity      = 0.40
	weightDependencies = 0.30
	weightFeasibility  = 0.30
)

// Evaluate scores document quality across clarity, dependencies, and
// feasibility. It runs even on structurally invalid documents and never
// fails; structural problems simply cost points. Issues are returned most
// damaging first, ties kept in discovery order.
func Evaluate(stories []Story, t Thresholds) QualityResult {
	if len(stories) == 0 {
		return QualityResult{
			Score: 0,
			Grade: GradeF,
			Issues: []QualityIssue{{
				Category:   CategoryClarity,
				Issue:      "document contains no user stories",
				Suggestion: "Add at least one user story to the PRD",
				Impact:     100,
			}},
		}
	}

	var issues []QualityIssue
	clarity := evalClarity(stories, t, &issues)
	deps := evalDependencies(stories, t, &issues)
	feas := evalFeasibility(stories, t, &issues)

	weighted := weightClarity*float64(clarity) +
		weightDependencies*float64(deps) +
		weightFeasibility*float64(feas)
	score := clampScore(int(math.Round(weighted)))

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Impact > issues[j].Impact
	})
	if issues == nil {
		issues = []QualityIssue{}
	}

	return QualityResult{
		Score: score,
		Grade: gradeFor(score),
		Breakdown: QualityBreakdown{
			Clarity:      clarity,
			Dependencies: deps,
			Feasibility:  feas,
		},
		Issues: issues,
	}
}

func evalClarity(stories []Story, t Thresholds, issues *[]QualityIssue) int {
	score := 100
	for _, s := range stories {
		if len(strings.TrimSpace(s.Description)) < t.MinDescriptionLen {
			score -= t.ShortDescriptionPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryClarity,
				StoryID:    s.ID,
				Issue:      fmt.Sprintf("description is missing or too short (%d chars)", len(s.Description)),
				Suggestion: fmt.Sprintf("Describe context, expected behavior and edge cases in at least %d characters", t.MinDescriptionLen),
				Impact:     t.ShortDescriptionPenalty,
			})
		}
		if len(s.AcceptanceCriteria) == 0 {
			score -= t.MissingCriteriaPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryClarity,
				StoryID:    s.ID,
				Issue:      "story has no acceptance criteria",
				Suggestion: "Add specific, testable criteria so completion can be verified",
				Impact:     t.MissingCriteriaPenalty,
			})
		}
		if vagueTitle(s.Title, t) {
			score -= t.VagueTitlePenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryClarity,
				StoryID:    s.ID,
				Issue:      fmt.Sprintf("title %q is vague or too short", s.Title),
				Suggestion: "State the user goal concretely, e.g. 'As a <user>, I want <goal>'",
				Impact:     t.VagueTitlePenalty,
			})
		}
	}
	return clampScore(score)
}

func evalDependencies(stories []Story, t Thresholds, issues *[]QualityIssue) int {
	score := 100
	g := newDepGraph(stories)

	for _, s := range stories {
		for _, dep := range s.Dependencies {
			if _, ok := g.index[dep]; ok {
				continue
			}
			score -= t.MissingReferencePenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryDependencies,
				StoryID:    s.ID,
				Issue:      fmt.Sprintf("references undeclared story %q", dep),
				Suggestion: "Remove the dependency or declare the missing story",
				Impact:     t.MissingReferencePenalty,
			})
		}
	}

	for _, cycle := range g.findCycles() {
		score -= t.CyclePenalty
		*issues = append(*issues, QualityIssue{
			Category:   CategoryDependencies,
			StoryID:    cycle[0],
			Issue:      fmt.Sprintf("circular dependency involving %s", strings.Join(cycle, ", ")),
			Suggestion: "Break the cycle; a dependency loop can never be scheduled",
			Impact:     t.CyclePenalty,
		})
	}

	limit := t.fanLimit(len(stories))
	for i, id := range g.ids {
		if len(g.deps[i]) > limit {
			score -= t.ExcessiveFanPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryDependencies,
				StoryID:    id,
				Issue:      fmt.Sprintf("story depends on %d others (limit %d for this document size)", len(g.deps[i]), limit),
				Suggestion: "Split the story or reduce coupling between stories",
				Impact:     t.ExcessiveFanPenalty,
			})
		}
		if len(g.dependents[i]) > limit {
			score -= t.ExcessiveFanPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryDependencies,
				StoryID:    id,
				Issue:      fmt.Sprintf("%d stories depend on this one (limit %d for this document size)", len(g.dependents[i]), limit),
				Suggestion: "Split the bottleneck or schedule it as early as possible",
				Impact:     t.ExcessiveFanPenalty,
			})
		}
	}

	for i, id := range g.ids {
		if len(g.dependents[i]) > 0 && len(g.stories[i].AcceptanceCriteria) == 0 {
			score -= t.UngatedDependencyPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryDependencies,
				StoryID:    id,
				Issue:      "story has dependents but no acceptance criteria to gate them",
				Suggestion: "Add criteria so dependent stories have a verifiable starting point",
				Impact:     t.UngatedDependencyPenalty,
			})
		}
	}

	return clampScore(score)
}

func evalFeasibility(stories []Story, t Thresholds, issues *[]QualityIssue) int {
	score := 100
	byID := make(map[string]Story, len(stories))
	for _, s := range stories {
		if _, seen := byID[s.ID]; !seen {
			byID[s.ID] = s
		}
	}

	totalCriteria := 0
	for _, s := range stories {
		totalCriteria += len(s.AcceptanceCriteria)
	}
	avgCriteria := float64(totalCriteria) / float64(len(stories))

	for _, s := range stories {
		if strings.TrimSpace(s.Repo) == "" {
			score -= t.MissingRepoPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryFeasibility,
				StoryID:    s.ID,
				Issue:      "story has no target repo",
				Suggestion: "Tag the story with the codebase an agent should work in",
				Impact:     t.MissingRepoPenalty,
			})
		}

		// A dependency that is numerically less urgent than its dependent
		// would be scheduled after something that needs it. One finding per
		// story keeps the output proportionate.
		for _, depID := range s.Dependencies {
			dep, ok := byID[depID]
			if !ok || dep.Priority <= s.Priority {
				continue
			}
			score -= t.PriorityInversionPenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryFeasibility,
				StoryID:    s.ID,
				Issue:      fmt.Sprintf("depends on %q which has lower urgency (priority %d vs %d)", depID, dep.Priority, s.Priority),
				Suggestion: "Raise the dependency's priority or drop the dependency",
				Impact:     t.PriorityInversionPenalty,
			})
			break
		}

		n := len(s.AcceptanceCriteria)
		if n >= t.OversizeFloor && float64(n) > t.OversizeFactor*avgCriteria {
			score -= t.OversizePenalty
			*issues = append(*issues, QualityIssue{
				Category:   CategoryFeasibility,
				StoryID:    s.ID,
				Issue:      fmt.Sprintf("story is disproportionately large (%d criteria vs document average %.1f)", n, avgCriteria),
				Suggestion: "Break the story into smaller, independently verifiable pieces",
				Impact:     t.OversizePenalty,
			})
		}
	}

	return clampScore(score)
}

func vagueTitle(title string, t Thresholds) bool {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < t.MinTitleLen {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, word := range t.VagueTitleWords {
		for _, field := range strings.Fields(lower) {
			if strings.Trim(field, ".,;:!?") == word {
				return true
			}
		}
	}
	return false
}

func gradeFor(score int) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
