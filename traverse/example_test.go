package traverse_test

import (
	"fmt"

	"github.com/vizkit/stepgraph/core"
	"github.com/vizkit/stepgraph/traverse"
)

// ExampleState_Step walks the diamond graph one step at a time and prints
// the node finalized by each transition with its BFS level.
func ExampleState_Step() {
	g, _ := core.FromAdjacency(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B", "C"}, "B": {"D"}},
	)
	s, _ := traverse.New(g, "A", traverse.FIFO)
	for {
		did, _ := s.Step()
		if !did {
			break
		}
		snap := s.Snapshot()
		fmt.Printf("step %d: %s (level %d)\n", snap.Step, snap.Current, snap.Levels[snap.Current])
	}
	// Output:
	// step 1: A (level 0)
	// step 2: B (level 1)
	// step 3: C (level 1)
	// step 4: D (level 2)
}

// ExampleWithDiscoveryPolicy forces push-time marking on a DFS run:
// pushing B then C leaves C on top of the stack.
func ExampleWithDiscoveryPolicy() {
	g, _ := core.FromAdjacency(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B", "C"}, "B": {"D"}},
	)
	s, _ := traverse.New(g, "A", traverse.LIFO,
		traverse.WithDiscoveryPolicy(traverse.MarkOnEnqueue))
	for {
		did, _ := s.Step()
		if !did {
			break
		}
	}
	fmt.Println(s.Snapshot().Order)
	// Output:
	// [A C B D]
}
