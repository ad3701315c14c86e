package prd

import (
	"reflect"
	"testing"
)

func TestDepGraph_DropsMissingReferences(t *testing.T) {
	g := newDepGraph([]Story{
		cleanStory("US-001", "US-404"),
		cleanStory("US-002", "US-001"),
	})

	if len(g.deps[0]) != 0 {
		t.Errorf("US-001 deps = %v, want none (undeclared edge dropped)", g.deps[0])
	}
	if !reflect.DeepEqual(g.deps[1], []int{0}) {
		t.Errorf("US-002 deps = %v, want [0]", g.deps[1])
	}
}

func TestDepGraph_DuplicateKeepsFirstDeclaration(t *testing.T) {
	first := cleanStory("US-001")
	first.Priority = 1
	second := cleanStory("US-001")
	second.Priority = 9

	g := newDepGraph([]Story{first, second})

	if g.len() != 1 {
		t.Fatalf("len = %d, want 1", g.len())
	}
	if g.stories[0].Priority != 1 {
		t.Errorf("kept priority = %d, want the first declaration's 1", g.stories[0].Priority)
	}
}

func TestDepGraph_OneCyclePerRoot(t *testing.T) {
	// Two disjoint two-story cycles.
	g := newDepGraph([]Story{
		cleanStory("US-001", "US-002"),
		cleanStory("US-002", "US-001"),
		cleanStory("US-003", "US-004"),
		cleanStory("US-004", "US-003"),
	})

	cycles := g.findCycles()
	want := [][]string{
		{"US-001", "US-002"},
		{"US-003", "US-004"},
	}
	if !reflect.DeepEqual(cycles, want) {
		t.Errorf("findCycles() = %v, want %v", cycles, want)
	}
}

func TestDepGraph_ChainLengthTieBreaksTowardSmallestID(t *testing.T) {
	// US-003 can extend a chain through either US-001 or US-002; the
	// back-pointer must prefer US-001.
	g := newDepGraph([]Story{
		cleanStory("US-002"),
		cleanStory("US-001"),
		cleanStory("US-003", "US-002", "US-001"),
	})

	path := g.criticalPath()
	if !reflect.DeepEqual(path, []string{"US-001", "US-003"}) {
		t.Errorf("criticalPath() = %v, want [US-001 US-003]", path)
	}
}
