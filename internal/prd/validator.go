package prd

import (
	"fmt"
	"strings"
)

// Validate checks referential integrity and acyclicity of the story graph.
// Errors block acceptance; warnings never do. Findings are emitted in a
// fixed pass order (duplicates, missing references, cycles, then per-story
// warnings), each pass in story-declaration order, so repeat runs on the
// same input produce identical output.
func Validate(stories []Story) ValidationResult {
	result := ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	seen := make(map[string]struct{}, len(stories))
	for i, s := range stories {
		if _, dup := seen[s.ID]; dup {
			result.Errors = append(result.Errors, ValidationError{
				Path:     fmt.Sprintf("userStories[%d].id", i),
				Code:     CodeDuplicateID,
				Message:  fmt.Sprintf("duplicate story id %q", s.ID),
				Severity: SeverityError,
			})
			continue
		}
		seen[s.ID] = struct{}{}
	}

	for i, s := range stories {
		for j, dep := range s.Dependencies {
			if _, ok := seen[dep]; ok {
				continue
			}
			result.Errors = append(result.Errors, ValidationError{
				Path:     fmt.Sprintf("userStories[%d].dependencies[%d]", i, j),
				Code:     CodeMissingReference,
				Message:  fmt.Sprintf("story %q depends on %q which is not declared", s.ID, dep),
				Severity: SeverityError,
			})
		}
	}

	g := newDepGraph(stories)
	for _, cycle := range g.findCycles() {
		chain := append(append([]string{}, cycle...), cycle[0])
		result.Errors = append(result.Errors, ValidationError{
			Path:     fmt.Sprintf("userStories[%d].dependencies", g.index[cycle[0]]),
			Code:     CodeCircularDependency,
			Message:  fmt.Sprintf("circular dependency: %s", strings.Join(chain, " -> ")),
			Severity: SeverityError,
		})
	}

	for i, s := range stories {
		if len(s.AcceptanceCriteria) == 0 {
			result.Warnings = append(result.Warnings, ValidationError{
				Path:     fmt.Sprintf("userStories[%d].acceptanceCriteria", i),
				Code:     CodeEmptyAcceptanceCriteria,
				Message:  fmt.Sprintf("story %q has no acceptance criteria", s.ID),
				Severity: SeverityWarning,
			})
		}
		if strings.TrimSpace(s.Description) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Path:     fmt.Sprintf("userStories[%d].description", i),
				Code:     CodeEmptyDescription,
				Message:  fmt.Sprintf("story %q has no description", s.ID),
				Severity: SeverityWarning,
			})
		}
		if strings.TrimSpace(s.Repo) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Path:     fmt.Sprintf("userStories[%d].repo", i),
				Code:     CodeMissingRepo,
				Message:  fmt.Sprintf("story %q has no target repo", s.ID),
				Severity: SeverityWarning,
			})
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
