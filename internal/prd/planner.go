package prd

import (
	"fmt"
	"sort"
	"strings"
)

// Plan computes the deterministic execution plan: dependency-respecting
// phases, parallelization groups, critical path, and recommendations.
//
// The acyclic flag is the validator's verdict. Cyclic input short-circuits
// to an empty plan with a single recommendation; the planner never attempts
// partial ordering over a graph it cannot layer. Missing references have
// already been dropped from the graph, so a story whose only dependency is
// undeclared still lands in phase 1.
func Plan(stories []Story, acyclic bool) PlanningResult {
	result := emptyPlan()
	if len(stories) == 0 {
		result.Recommendations = append(result.Recommendations,
			"PRD contains no user stories to plan")
		return result
	}
	if !acyclic {
		result.Recommendations = append(result.Recommendations,
			"Resolve circular dependencies before planning; no execution order exists for a cyclic graph")
		return result
	}

	g := newDepGraph(stories)
	phaseOf := g.phaseNumbers()

	maxPhase := 0
	for _, p := range phaseOf {
		if p > maxPhase {
			maxPhase = p
		}
	}

	members := make([][]int, maxPhase+1)
	for i, p := range phaseOf {
		members[p] = append(members[p], i)
	}

	for p := 1; p <= maxPhase; p++ {
		group := members[p]
		sort.Slice(group, func(a, b int) bool {
			sa, sb := g.stories[group[a]], g.stories[group[b]]
			if sa.Priority != sb.Priority {
				return sa.Priority < sb.Priority
			}
			return sa.ID < sb.ID
		})

		ids := make([]string, len(group))
		for k, idx := range group {
			ids[k] = g.ids[idx]
		}

		// can_parallelize is an invariant of longest-path layering: two
		// stories in the same phase cannot depend on each other, or the
		// dependent would sit in a strictly higher phase.
		result.Phases = append(result.Phases, ExecutionPhase{
			PhaseNumber:    p,
			Stories:        ids,
			CanParallelize: true,
			Rationale:      phaseRationale(p, len(ids)),
		})
		result.ExecutionOrder = append(result.ExecutionOrder, ids...)
		if len(ids) >= 2 {
			result.ParallelizationOpportunities = append(result.ParallelizationOpportunities, ids)
		}
	}

	result.CriticalPath = g.criticalPath()
	result.CriticalPathLength = len(result.CriticalPath)
	result.Recommendations = recommendations(g, result)
	return result
}

func emptyPlan() PlanningResult {
	return PlanningResult{
		ExecutionOrder:               []string{},
		Phases:                       []ExecutionPhase{},
		CriticalPath:                 []string{},
		ParallelizationOpportunities: [][]string{},
		Recommendations:              []string{},
	}
}

func phaseRationale(phase, size int) string {
	switch {
	case phase == 1 && size > 1:
		return fmt.Sprintf("%d stories have no unmet dependencies and can run in parallel", size)
	case phase == 1:
		return "story has no dependencies and can start immediately"
	case size > 1:
		return fmt.Sprintf("%d independent stories unlock once phase %d completes", size, phase-1)
	default:
		return fmt.Sprintf("waits on phase %d; no parallel work available here", phase-1)
	}
}

// recommendations applies fixed heuristic rules in a fixed order; each rule
// contributes at most one entry.
func recommendations(g *depGraph, plan PlanningResult) []string {
	recs := []string{}
	n := g.len()
	cp := plan.CriticalPath

	if len(cp) >= 2 && len(cp)*2 >= n {
		recs = append(recs, fmt.Sprintf(
			"Critical path spans %d of %d stories (%s); splitting %s would shorten the minimum schedule",
			len(cp), n, strings.Join(cp, " -> "), cp[0]))
	}

	if len(plan.Phases) > 0 {
		recs = append(recs, fmt.Sprintf(
			"Start with %s; no dependencies block them",
			strings.Join(plan.Phases[0].Stories, ", ")))
	}

	if len(plan.ParallelizationOpportunities) > 0 {
		total, largest := 0, 0
		for _, group := range plan.ParallelizationOpportunities {
			total += len(group)
			if len(group) > largest {
				largest = len(group)
			}
		}
		recs = append(recs, fmt.Sprintf(
			"%d phases offer parallel work (%d stories); size the worker pool for the largest group of %d",
			len(plan.ParallelizationOpportunities), total, largest))
	}

	if id, count := busiestBottleneck(g); count >= 3 {
		recs = append(recs, fmt.Sprintf(
			"%s unblocks %d stories; schedule it as early as possible", id, count))
	}

	if n > 2 && len(plan.ParallelizationOpportunities) == 0 {
		recs = append(recs, "No two stories can run in parallel; consider relaxing dependencies")
	}

	for _, id := range cp {
		if len(g.stories[g.index[id]].AcceptanceCriteria) == 0 {
			recs = append(recs, fmt.Sprintf(
				"%s sits on the critical path but has no acceptance criteria; add them before dispatching agents", id))
			break
		}
	}

	return recs
}

// busiestBottleneck returns the story with the most dependents, ties broken
// toward the smallest id.
func busiestBottleneck(g *depGraph) (string, int) {
	bestID, bestCount := "", 0
	for i, id := range g.ids {
		count := len(g.dependents[i])
		if count > bestCount || (count == bestCount && count > 0 && id < bestID) {
			bestID, bestCount = id, count
		}
	}
	return bestID, bestCount
}
