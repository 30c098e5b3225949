// Command octree-viz opens an OpenGL window and draws the live structure of
// a loose bounds octree: every node's loose bounding box as a wireframe, and
// every inserted object's own box in a brighter color. A handful of random
// boxes are inserted and removed over time so the tree's grow/split/merge/
// shrink behavior is visible while the camera orbits (or is flown manually).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mirstar13/octree3d/internal/gfx"
	"github.com/mirstar13/octree3d/octree"
)

type Camera = gfx.Camera
type Point = gfx.Point

type trackedBox struct {
	id     string
	bounds octree.AABB
}

func main() {
	renderer := NewOpenGLRenderer(1024, 768)
	if err := renderer.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize renderer: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Shutdown()

	camera := gfx.NewCameraAt(0, 30, 80)
	camera.LookAt(Point{})
	renderer.SetCamera(camera)
	renderer.SetShowDebugInfo(true)

	input := NewGLFWInputManager(renderer.window)
	controller := NewCameraController(camera)

	tree := octree.NewBoundsOctree[string](64, octree.Vector3{}, 1, 1.25)

	rng := rand.New(rand.NewSource(1))
	var tracked []trackedBox
	nextID := 0

	spawn := func() {
		id := fmt.Sprintf("box-%d", nextID)
		nextID++
		center := octree.Vector3{
			X: (rng.Float64() - 0.5) * 40,
			Y: (rng.Float64() - 0.5) * 40,
			Z: (rng.Float64() - 0.5) * 40,
		}
		size := 1.0 + rng.Float64()*3.0
		bounds := octree.NewAABB(center, octree.Vector3{size, size, size})
		tree.Add(id, bounds)
		tracked = append(tracked, trackedBox{id: id, bounds: bounds})
	}

	for i := 0; i < 40; i++ {
		spawn()
	}

	nodeColor := gfx.NewColor(80, 80, 90)
	objectColor := gfx.NewColor(80, 220, 120)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for !renderer.window.ShouldClose() {
		select {
		case <-ticker.C:
			if len(tracked) > 60 {
				victim := tracked[0]
				tracked = tracked[1:]
				tree.RemoveAt(victim.id, victim.bounds)
			} else {
				spawn()
			}
		default:
		}

		state := input.GetInputState()
		if state.Quit {
			break
		}
		controller.Update(state)

		renderer.BeginFrame()

		for _, b := range tree.NodeBounds() {
			renderer.AddBoxWireframe(Box{
				Center: Point{X: b.Center.X, Y: b.Center.Y, Z: b.Center.Z},
				Size:   Point{X: b.Size.X, Y: b.Size.Y, Z: b.Size.Z},
			}, nodeColor)
		}
		for _, t := range tracked {
			renderer.AddBoxWireframe(Box{
				Center: Point{X: t.bounds.Center.X, Y: t.bounds.Center.Y, Z: t.bounds.Center.Z},
				Size:   Point{X: t.bounds.Size.X, Y: t.bounds.Size.Y, Z: t.bounds.Size.Z},
			}, objectColor)
		}

		renderer.EndFrame()
		renderer.Present()
	}
}
