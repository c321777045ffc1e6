package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rigid3d/internal/config"
	"rigid3d/internal/world"

	"github.com/spf13/cobra"
)

type runOptions struct {
	scene    string
	settings string
	frames   int
	dt       float32
	realtime bool
	watch    bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a scene file and print the final body states",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.scene, "scene", "s", "", "scene file (yaml)")
	f.StringVarP(&opts.settings, "settings", "c", "", "settings file (yaml or toml)")
	f.IntVarP(&opts.frames, "frames", "n", 100, "number of frames to simulate")
	f.Float32Var(&opts.dt, "dt", 1.0/60, "frame time in seconds")
	f.BoolVar(&opts.realtime, "realtime", false, "sleep for each frame's duration")
	f.BoolVarP(&opts.watch, "watch", "w", false, "reload the settings file when it changes")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func runScene(cmd *cobra.Command, opts runOptions) error {
	if opts.watch && opts.settings == "" {
		return errors.New("--watch needs --settings")
	}
	if opts.frames < 0 || opts.dt < 0 {
		return errors.New("frames and dt must not be negative")
	}

	settings, err := loadSettings(opts.settings)
	if err != nil {
		return err
	}
	var level slog.LevelVar
	logger, err := newLogger(cmd.ErrOrStderr(), settings, &level)
	if err != nil {
		return err
	}

	w, err := world.New(settings, logger)
	if err != nil {
		return err
	}
	if err := w.LoadScene(opts.scene); err != nil {
		return err
	}
	w.Start()

	var events <-chan string
	var watchErrs <-chan error
	if opts.watch {
		watcher, err := config.Watch(opts.settings)
		if err != nil {
			return fmt.Errorf("watch settings: %w", err)
		}
		defer watcher.Close()
		events, watchErrs = watcher.Events, watcher.Errors
	}

	steps := 0
	for frame := 0; frame < opts.frames; frame++ {
		drainSettings(w, &level, logger, events, watchErrs)

		n, err := w.Update(opts.dt)
		steps += n
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		if opts.realtime {
			time.Sleep(time.Duration(float64(opts.dt) * float64(time.Second)))
		}
	}
	logger.Info("simulation finished", "frames", opts.frames, "steps", steps, "narrow_phase", w.Settings.NarrowPhase)

	printBodies(cmd, w)
	return nil
}

// drainSettings applies every pending reload without blocking the frame.
func drainSettings(w *world.World, level *slog.LevelVar, logger *slog.Logger, events <-chan string, errs <-chan error) {
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return
			}
			s, err := config.Load(path)
			if err == nil {
				err = w.ApplySettings(s)
			}
			if err != nil {
				logger.Warn("settings reload rejected", "path", path, "err", err)
				continue
			}
			if l, err := s.SlogLevel(); err == nil {
				level.Set(l)
			}
			logger.Info("settings reloaded", "path", path)
		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("settings watcher", "err", err)
		default:
			return
		}
	}
}

func printBodies(cmd *cobra.Command, w *world.World) {
	out := cmd.OutOrStdout()
	for _, rb := range w.Physics.Rigidbodies() {
		g := rb.GetGameObject()
		p, v := g.WorldPosition(), rb.Velocity
		fmt.Fprintf(out, "%-16s pos (%8.3f %8.3f %8.3f)  vel (%8.3f %8.3f %8.3f)\n",
			g.Name, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
	}
}
