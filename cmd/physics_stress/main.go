// Stress test comparing the SAT and GJK/EPA narrow phases, plus full steps
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"rigid3d/internal/components"
	"rigid3d/internal/config"
	"rigid3d/internal/engine"
	"rigid3d/internal/physics"
	"rigid3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
)

func main() {
	var steps int
	var counts []int
	cmd := &cobra.Command{
		Use:   "physics_stress",
		Short: "Time the narrow phases and full physics steps over random bodies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, count := range counts {
				testNarrowPhase(count)
			}
			fmt.Println()
			for _, count := range counts {
				testFullStep(count, steps)
			}
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 20, "full physics steps to time per count")
	cmd.Flags().IntSliceVar(&counts, "counts", []int{50, 100, 250, 500, 1000}, "object counts to test")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// randomShapes spawns a mix of spheres and cubes in a cube whose size
// scales with count to keep density reasonable.
func randomShapes(count int) []physics.Shape {
	rng := rand.New(rand.NewSource(42)) // Consistent results
	spawnSize := float32(20.0) + float32(count)/20.0

	shapes := make([]physics.Shape, count)
	for i := range shapes {
		var s physics.Shape
		size := 0.5 + rng.Float32()*0.5
		if i%2 == 0 {
			s, _ = physics.NewSphere(size)
		} else {
			s, _ = physics.NewCube(rl.Vector3{X: 2 * size, Y: 2 * size, Z: 2 * size})
		}
		pose := physics.IdentityPose()
		pose.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		pose.Rotation = rl.QuaternionFromEuler(rng.Float32()*3, rng.Float32()*3, rng.Float32()*3)
		s.Update(pose)
		shapes[i] = s
	}
	return shapes
}

func testNarrowPhase(count int) {
	shapes := randomShapes(count)
	candidates := boxPairs(shapes)

	const iterations = 10
	run := func(narrow physics.NarrowPhase) (time.Duration, int, int) {
		start := time.Now()
		hits, failures := 0, 0
		for iter := 0; iter < iterations; iter++ {
			hits, failures = 0, 0
			for _, pair := range candidates {
				_, hit, err := narrow.Collide(shapes[pair[0]], shapes[pair[1]])
				if err != nil {
					failures++
				} else if hit {
					hits++
				}
			}
		}
		return time.Since(start) / iterations, hits, failures
	}

	satTime, satHits, satFail := run(physics.SAT{})
	gjkTime, gjkHits, gjkFail := run(physics.GJKEPA{MaxIterations: config.Default().EPAMaxIterations})

	ratio := float64(gjkTime) / float64(satTime)

	fmt.Printf("%5d shapes: %5d box pairs | SAT %10v (%4d hits, %d err) | GJK %10v (%4d hits, %d err) | %.2fx\n",
		count, len(candidates),
		satTime.Round(time.Microsecond), satHits, satFail,
		gjkTime.Round(time.Microsecond), gjkHits, gjkFail, ratio)
}

// boxPairs returns the index pairs whose world boxes touch; only those
// reach the narrow phase.
func boxPairs(shapes []physics.Shape) [][2]int {
	boxes := make([]physics.AABB, len(shapes))
	for i, s := range shapes {
		boxes[i] = physics.NewAABBFromShape(s)
	}
	var pairs [][2]int
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Intersects(boxes[j]) {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func testFullStep(count, steps int) {
	for _, narrow := range []string{config.NarrowPhaseSAT, config.NarrowPhaseGJK} {
		settings := config.Default()
		settings.NarrowPhase = narrow
		settings.MaxSubSteps = 0
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		w, err := world.New(settings, logger)
		if err != nil {
			fmt.Printf("%5d bodies: %s ERROR: %v\n", count, narrow, err)
			return
		}
		populate(w.Scene, count)
		w.Start()

		start := time.Now()
		for i := 0; i < steps; i++ {
			if err := w.Physics.Step(settings.FixedTimestep); err != nil {
				fmt.Printf("%5d bodies: %s ERROR at step %d: %v\n", count, narrow, i, err)
				return
			}
		}
		perStep := time.Since(start) / time.Duration(steps)
		fmt.Printf("%5d bodies: %s %10v per step\n", count, narrow, perStep.Round(time.Microsecond))
	}
}

// populate drops spheres and cubes into a column above a static floor.
func populate(scene *engine.Scene, count int) {
	rng := rand.New(rand.NewSource(7))
	spread := float32(10.0) + float32(count)/50.0

	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -0.5}
	box, _ := components.NewBoxCollider(rl.Vector3{X: 4 * spread, Y: 1, Z: 4 * spread})
	floor.AddComponent(box)
	scene.AddGameObject(floor)

	for i := 0; i < count; i++ {
		g := engine.NewGameObject(fmt.Sprintf("Body%d", i))
		g.Transform.Position = rl.Vector3{
			X: rng.Float32()*spread - spread/2,
			Y: 1 + rng.Float32()*spread,
			Z: rng.Float32()*spread - spread/2,
		}
		if i%2 == 0 {
			c, _ := components.NewSphereCollider(0.5)
			g.AddComponent(c)
		} else {
			c, _ := components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1})
			g.AddComponent(c)
		}
		g.AddComponent(components.NewRigidbody())
		scene.AddGameObject(g)
	}
}
