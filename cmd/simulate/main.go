package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/defs"
	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/script"
	"github.com/milk9111/aitoolkit/targeting"
)

func main() {
	defsDir := flag.String("defs", "examples/defs", "directory of YAML behavior definitions and tengo scripts")
	scenarioPath := flag.String("scenario", "examples/scenario.yaml", "scenario file describing entities to spawn")
	ticks := flag.Int("ticks", 20, "number of simulation ticks to run (ignored with -watch)")
	watch := flag.Bool("watch", false, "keep running and hot-reload definitions on change")
	interval := flag.Duration("interval", 100*time.Millisecond, "tick interval with -watch")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := buildLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	runtime := script.NewRuntime(*defsDir, logger)
	registry := defs.NewRegistry(logger)
	registry.SetScriptLoader(runtime)

	library := defs.NewLibrary(*defsDir, registry, logger)
	if err := library.LoadAll(); err != nil {
		logger.Fatal("load definitions", zap.Error(err))
	}

	scenario, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}

	world := ecs.NewWorld()
	named, err := scenario.spawn(world)
	if err != nil {
		logger.Fatal("spawn scenario", zap.Error(err))
	}
	logger.Info("scenario spawned", zap.Int("entities", len(named)))

	world.AddSystem(targeting.NewSystem())
	world.AddSystem(defs.NewSystem(library, logger))

	if *watch {
		runWatched(world, library, runtime, *defsDir, *interval, logger)
		return
	}

	for tick := 0; tick < *ticks; tick++ {
		world.Update()
		logTick(world, named, tick, logger)
	}
}

func runWatched(world *ecs.World, library *defs.Library, runtime *script.Runtime, dir string, interval time.Duration, logger *zap.Logger) {
	watcher, err := defs.NewWatcher(dir)
	if err != nil {
		logger.Fatal("watch definitions", zap.Error(err))
	}
	defer func() { _ = watcher.Close() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ticker.C:
			world.Update()
			tick++
		case path, ok := <-watcher.Events:
			if !ok {
				return
			}
			runtime.Invalidate(path)
			// a changed script hides behind an unchanged YAML hash
			library.InvalidateAll()
			if err := library.LoadAll(); err != nil {
				logger.Warn("reload failed, keeping previous definitions", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		case <-stop:
			logger.Info("stopping", zap.Int("ticks", tick))
			return
		}
	}
}

func logTick(w *ecs.World, named map[string]ecs.Entity, tick int, logger *zap.Logger) {
	for name, e := range named {
		tr, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		fields := []zap.Field{
			zap.Int("tick", tick),
			zap.String("entity", name),
			zap.Float64("x", tr.X),
			zap.Float64("y", tr.Y),
		}
		if t, ok := ecs.Get(w, e, targeting.TargetComponent); ok {
			if tgt, found := t.Resolve(w); found {
				fields = append(fields, zap.Stringer("target", tgt))
			}
		}
		logger.Debug("entity state", fields...)
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
