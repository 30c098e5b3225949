// Command octree-tui drives a point octree from the keyboard and prints its
// live shape to the terminal: object count, node count, and root size. It exists
// to exercise PointOctree's grow/split/merge/shrink behavior without an
// OpenGL context, for headless terminals or quick manual testing.
package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/mirstar13/octree3d/internal/gfx"
	"github.com/mirstar13/octree3d/octree"
)

const fillDisplayCap = 64.0

const (
	treeInitialSize = 16.0
	treeMinSize     = 0.5
	spawnRadius     = 6.0
)

func main() {
	input := NewSilentInputManager()
	if err := input.Start(); err != nil {
		fmt.Printf("failed to open keyboard: %v\n", err)
		return
	}
	defer input.Stop()

	fmt.Println("=== Octree TUI ===")
	fmt.Println("Controls:")
	fmt.Println("  p - add a random point")
	fmt.Println("  b - add a random point (same as p)")
	fmt.Println("  r - remove the oldest tracked object")
	fmt.Println("  c - reset the tree")
	fmt.Println("  q / x / esc - quit")
	fmt.Println()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tree := octree.NewPointOctree[int](treeInitialSize, octree.Vector3{}, treeMinSize)
	var order []int
	nextID := 0

	randomPoint := func() octree.Vector3 {
		return octree.Vector3{
			X: (rng.Float64()*2 - 1) * spawnRadius,
			Y: (rng.Float64()*2 - 1) * spawnRadius,
			Z: (rng.Float64()*2 - 1) * spawnRadius,
		}
	}

	reset := func() {
		tree = octree.NewPointOctree[int](treeInitialSize, octree.Vector3{}, treeMinSize)
		order = nil
		nextID = 0
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	fmt.Print("\033[2J\033[H")
	for range ticker.C {
		state := input.GetInputState()
		if state.Quit {
			break
		}

		switch {
		case state.AddPoint, state.AddBox:
			id := nextID
			nextID++
			tree.Add(id, randomPoint())
			order = append(order, id)
		case state.RemoveOne:
			if len(order) > 0 {
				victim := order[0]
				order = order[1:]
				tree.Remove(victim)
			}
		case state.Reset:
			reset()
		}
		input.ClearKeys()

		bounds := tree.NodeBounds()
		fillColor := gfx.IntensityToWarmColor(float64(tree.Count()) / fillDisplayCap)
		fmt.Print("\033[2J\033[H")
		fmt.Println("=== Octree TUI ===")
		fmt.Printf("%sobjects: %d%s | nodes: %d | root size: %.2f\n",
			fillColor.ToANSI(), tree.Count(), gfx.ColorReset(), len(bounds), bounds[0].Size.X)
		fmt.Println("p add point | b add point | r remove oldest | c reset | q quit")
	}
}
