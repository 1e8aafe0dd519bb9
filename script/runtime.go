// Package script runs tengo-scripted behavior leaves and utility scorers.
// Scripts are compiled once per path and keep a persistent per-entity
// state map across ticks.
package script

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/ecs"
)

const leafDispatch = `
__result := tick(__env, __state)
`

const scorerDispatch = `
__score := score(__env, __state)
`

// Runtime compiles and caches scripts relative to a base directory. It
// implements the defs script-loader contract.
type Runtime struct {
	dir      string
	log      *zap.Logger
	programs map[string]*program
}

type program struct {
	path     string
	compiled *tengo.Compiled
	states   map[ecs.Entity]*tengo.Map
	log      *zap.Logger
}

func NewRuntime(dir string, logger *zap.Logger) *Runtime {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runtime{
		dir:      dir,
		log:      logger,
		programs: map[string]*program{},
	}
}

// Invalidate drops the cached compile of a script so the next load picks
// up changed file contents. Per-entity script state is discarded with it.
func (r *Runtime) Invalidate(path string) {
	delete(r.programs, filepath.Base(path))
}

func (r *Runtime) load(path, dispatch string) (*program, error) {
	key := filepath.Base(path)
	if p, ok := r.programs[key]; ok {
		return p, nil
	}

	src, err := os.ReadFile(filepath.Join(r.dir, path))
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}

	s := tengo.NewScript(append(src, []byte(dispatch)...))
	_ = s.Add("__env", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}

	p := &program{
		path:     path,
		compiled: compiled,
		states:   map[ecs.Entity]*tengo.Map{},
		log:      r.log,
	}
	r.programs[key] = p
	return p, nil
}

// run executes the dispatch for one entity and returns the named result
// global.
func (p *program) run(e ecs.Entity, w *ecs.World, result string) (*tengo.Variable, error) {
	state, ok := p.states[e]
	if !ok {
		state = &tengo.Map{Value: map[string]tengo.Object{}}
		p.states[e] = state
	}
	if err := p.compiled.Set("__env", buildEnv(e, w)); err != nil {
		return nil, err
	}
	if err := p.compiled.Set("__state", state); err != nil {
		return nil, err
	}
	if err := p.compiled.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", p.path, err)
	}
	return p.compiled.Get(result), nil
}
