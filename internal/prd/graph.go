package prd

// depGraph is an index-addressed view of the story dependency relation:
// story id -> integer index -> adjacency list. Duplicate ids keep their
// first declaration; dependency edges to undeclared ids are dropped so
// planning can degrade gracefully (the validator reports them separately).
type depGraph struct {
	ids        []string
	index      map[string]int
	stories    []Story
	deps       [][]int // story -> indices it depends on
	dependents [][]int // reverse edges
}

func newDepGraph(stories []Story) *depGraph {
	g := &depGraph{index: make(map[string]int, len(stories))}
	for _, s := range stories {
		if _, seen := g.index[s.ID]; seen {
			continue
		}
		g.index[s.ID] = len(g.ids)
		g.ids = append(g.ids, s.ID)
		g.stories = append(g.stories, s)
	}

	g.deps = make([][]int, len(g.ids))
	g.dependents = make([][]int, len(g.ids))
	for i, s := range g.stories {
		for _, dep := range s.Dependencies {
			j, ok := g.index[dep]
			if !ok {
				continue
			}
			g.deps[i] = append(g.deps[i], j)
			g.dependents[j] = append(g.dependents[j], i)
		}
	}
	return g
}

func (g *depGraph) len() int { return len(g.ids) }

// DFS colors for cycle detection.
const (
	white byte = iota
	gray
	black
)

// findCycles runs a three-color depth-first search and returns the detected
// cycles as id sequences. At most one cycle is reported per DFS root to keep
// output bounded; roots are visited in declaration order so the result is
// deterministic.
func (g *depGraph) findCycles() [][]string {
	color := make([]byte, g.len())
	stack := make([]int, 0, g.len())
	var cycles [][]string
	var found bool

	var visit func(n int)
	visit = func(n int) {
		color[n] = gray
		stack = append(stack, n)
		for _, m := range g.deps[n] {
			if found {
				break
			}
			switch color[m] {
			case white:
				visit(m)
			case gray:
				// Back-edge: the cycle is the gray suffix of the stack.
				start := 0
				for k, v := range stack {
					if v == m {
						start = k
						break
					}
				}
				cycle := make([]string, 0, len(stack)-start)
				for _, v := range stack[start:] {
					cycle = append(cycle, g.ids[v])
				}
				cycles = append(cycles, cycle)
				found = true
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
	}

	for i := 0; i < g.len(); i++ {
		if color[i] == white {
			found = false
			visit(i)
		}
	}
	return cycles
}

// phaseNumbers computes longest-path layering over an acyclic graph:
// phase(s) = 1 + max(phase(dep)), phase 1 for stories with no dependencies.
// Must not be called on a cyclic graph.
func (g *depGraph) phaseNumbers() []int {
	memo := make([]int, g.len())
	var phase func(n int) int
	phase = func(n int) int {
		if memo[n] != 0 {
			return memo[n]
		}
		p := 1
		for _, m := range g.deps[n] {
			if q := phase(m) + 1; q > p {
				p = q
			}
		}
		memo[n] = p
		return p
	}
	for i := 0; i < g.len(); i++ {
		phase(i)
	}
	return memo
}

// chainLengths computes, per story, the story count of the longest
// dependency chain ending at it, plus a back-pointer for reconstruction.
// Ties among predecessors break toward the smallest id. Acyclic input only.
func (g *depGraph) chainLengths() (length, prev []int) {
	length = make([]int, g.len())
	prev = make([]int, g.len())
	for i := range prev {
		prev[i] = -1
	}

	var walk func(n int) int
	walk = func(n int) int {
		if length[n] != 0 {
			return length[n]
		}
		best := 1
		bestPrev := -1
		for _, m := range g.deps[n] {
			l := walk(m) + 1
			if l > best || (l == best && bestPrev >= 0 && g.ids[m] < g.ids[bestPrev]) {
				best = l
				bestPrev = m
			}
		}
		length[n] = best
		prev[n] = bestPrev
		return best
	}
	for i := 0; i < g.len(); i++ {
		walk(i)
	}
	return length, prev
}

// criticalPath returns the longest dependency chain as an id sequence.
// Among equally long chains the lexicographically smallest id sequence wins,
// which prefers the smallest root id first and breaks remaining ties toward
// smaller ids along the path.
func (g *depGraph) criticalPath() []string {
	if g.len() == 0 {
		return []string{}
	}
	length, prev := g.chainLengths()

	maxLen := 0
	for _, l := range length {
		if l > maxLen {
			maxLen = l
		}
	}

	var best []string
	for i := 0; i < g.len(); i++ {
		if length[i] != maxLen {
			continue
		}
		path := make([]string, 0, maxLen)
		for n := i; n >= 0; n = prev[n] {
			path = append(path, g.ids[n])
		}
		// Reverse into root-first order.
		for a, b := 0, len(path)-1; a < b; a, b = a+1, b-1 {
			path[a], path[b] = path[b], path[a]
		}
		if best == nil || lessPath(path, best) {
			best = path
		}
	}
	return best
}

func lessPath(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
