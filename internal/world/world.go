package world

import (
	"fmt"
	"log/slog"

	"rigid3d/internal/config"
	"rigid3d/internal/engine"
)

// World owns a scene and drives its physics at a fixed timestep from
// variable frame times.
type World struct {
	Scene    *engine.Scene
	Physics  *PhysicsWorld
	Settings config.Settings

	accumulator float32
	logger      *slog.Logger
}

func New(settings config.Settings, logger *slog.Logger) (*World, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	scene := engine.NewScene("Main")
	w := &World{
		Scene:    scene,
		Physics:  NewPhysicsWorld(scene, logger),
		Settings: settings,
		logger:   logger,
	}
	w.Physics.ApplySettings(settings)
	return w, nil
}

// ApplySettings validates s and switches the world over to it. The
// accumulated frame time is kept.
func (w *World) ApplySettings(s config.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	w.Settings = s
	w.Physics.ApplySettings(s)
	return nil
}

// SetScene replaces the simulated scene.
func (w *World) SetScene(scene *engine.Scene) {
	w.Scene = scene
	w.Physics.Scene = scene
	w.accumulator = 0
}

func (w *World) Start() {
	w.Scene.Start()
}

// Update adds frameDelta to the accumulator and runs as many fixed steps
// as fit, then updates the scene's components once with frameDelta. With
// MaxSubSteps set, whole steps beyond the cap are dropped.
func (w *World) Update(frameDelta float32) (int, error) {
	if frameDelta < 0 {
		return 0, fmt.Errorf("world: negative frame delta %v", frameDelta)
	}
	dt := w.Settings.FixedTimestep
	w.accumulator += frameDelta

	steps := 0
	for w.accumulator >= dt {
		if w.Settings.MaxSubSteps > 0 && steps == w.Settings.MaxSubSteps {
			dropped := int(w.accumulator / dt)
			w.accumulator -= float32(dropped) * dt
			w.logger.Warn("physics falling behind, dropping steps", "dropped", dropped, "dt", dt)
			break
		}
		if err := w.Physics.Step(dt); err != nil {
			return steps, err
		}
		w.accumulator -= dt
		steps++
	}

	w.Scene.Update(frameDelta)
	return steps, nil
}

// Alpha is how far the accumulator is into the next step, in [0, 1).
func (w *World) Alpha() float32 {
	return w.accumulator / w.Settings.FixedTimestep
}
