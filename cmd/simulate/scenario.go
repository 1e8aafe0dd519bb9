package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/aitoolkit/defs"
	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/targeting"
)

type Scenario struct {
	Entities []EntitySpec `yaml:"entities"`
}

type EntitySpec struct {
	Name       string       `yaml:"name"`
	Position   PositionSpec `yaml:"position"`
	Targetable bool         `yaml:"targetable"`
	Vision     *VisionSpec  `yaml:"vision"`
	Tree       string       `yaml:"tree"`
	Utility    string       `yaml:"utility"`
}

type PositionSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VisionSpec struct {
	Range       float64 `yaml:"range"`
	FieldOfView float64 `yaml:"field_of_view"`
}

func loadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("simulate: read scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("simulate: unmarshal scenario %s: %w", path, err)
	}
	return s, nil
}

// spawn builds the world entities described by the scenario and returns
// them keyed by name.
func (s Scenario) spawn(w *ecs.World) (map[string]ecs.Entity, error) {
	out := make(map[string]ecs.Entity, len(s.Entities))
	for i, spec := range s.Entities {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("entity_%d", i)
		}
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent, component.Transform{X: spec.Position.X, Y: spec.Position.Y}); err != nil {
			return nil, err
		}
		if spec.Targetable {
			if err := ecs.Add(w, e, targeting.TargetableComponent, targeting.Targetable{}); err != nil {
				return nil, err
			}
		}
		if spec.Vision != nil {
			if err := ecs.Add(w, e, targeting.VisionComponent, targeting.Vision{
				Range:       spec.Vision.Range,
				FieldOfView: spec.Vision.FieldOfView,
			}); err != nil {
				return nil, err
			}
			if err := ecs.Add(w, e, targeting.TargetComponent, targeting.Target{}); err != nil {
				return nil, err
			}
		}
		if spec.Tree != "" {
			if err := ecs.Add(w, e, defs.TreeRefComponent, defs.TreeRef{Name: spec.Tree}); err != nil {
				return nil, err
			}
		}
		if spec.Utility != "" {
			if err := ecs.Add(w, e, defs.UtilityRefComponent, defs.UtilityRef{Name: spec.Utility}); err != nil {
				return nil, err
			}
		}
		out[name] = e
	}
	return out, nil
}
