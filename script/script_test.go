package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/aitoolkit/behavior"
	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/ecs/component"
	"github.com/milk9111/aitoolkit/targeting"
)

func writeScript(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
}

func TestLeafStatuses(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "fixed.tengo", `
tick := func(env, state) {
	return "success"
}
`)
	writeScript(t, dir, "boolean.tengo", `
tick := func(env, state) {
	return true
}
`)

	rt := NewRuntime(dir, nil)
	w := ecs.NewWorld()
	e := w.CreateEntity()

	fixed, err := rt.Leaf("fixed.tengo")
	require.NoError(t, err)
	require.Equal(t, behavior.Success, fixed.Tick(e, w))

	boolean, err := rt.Leaf("boolean.tengo")
	require.NoError(t, err)
	require.Equal(t, behavior.Success, boolean.Tick(e, w))
}

func TestLeafStatePersistsPerEntity(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "counter.tengo", `
tick := func(env, state) {
	state.count = (state.count || 0) + 1
	if state.count >= 3 {
		return "success"
	}
	return "running"
}
`)

	rt := NewRuntime(dir, nil)
	leaf, err := rt.Leaf("counter.tengo")
	require.NoError(t, err)

	w := ecs.NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	require.Equal(t, behavior.Running, leaf.Tick(e1, w))
	require.Equal(t, behavior.Running, leaf.Tick(e1, w))
	// a second entity keeps independent state
	require.Equal(t, behavior.Running, leaf.Tick(e2, w))
	require.Equal(t, behavior.Success, leaf.Tick(e1, w))
}

func TestLeafEnvAccessors(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "chase.tengo", `
tick := func(env, state) {
	if !env.has_target() {
		return "failure"
	}
	pos := env.position()
	tpos := env.target_position()
	env.set_position(pos[0] + (tpos[0]-pos[0])/2, pos[1] + (tpos[1]-pos[1])/2)
	return "running"
}
`)

	rt := NewRuntime(dir, nil)
	leaf, err := rt.Leaf("chase.tengo")
	require.NoError(t, err)

	w := ecs.NewWorld()
	chaser := w.CreateEntity()
	require.NoError(t, ecs.Add(w, chaser, component.TransformComponent, component.Transform{X: 0, Y: 0}))
	require.NoError(t, ecs.Add(w, chaser, targeting.TargetComponent, targeting.Target{}))

	require.Equal(t, behavior.Failure, leaf.Tick(chaser, w))

	prey := w.CreateEntity()
	require.NoError(t, ecs.Add(w, prey, component.TransformComponent, component.Transform{X: 8, Y: 0}))
	tgt, ok := ecs.Get(w, chaser, targeting.TargetComponent)
	require.True(t, ok)
	tgt.Entity = prey

	require.Equal(t, behavior.Running, leaf.Tick(chaser, w))
	tr, ok := ecs.Get(w, chaser, component.TransformComponent)
	require.True(t, ok)
	require.InDelta(t, 4.0, tr.X, 1e-9)
}

func TestScorer(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "closeness.tengo", `
score := func(env, state) {
	d := env.target_distance()
	if d < 0 {
		return 0.0
	}
	return 1.0 / (1.0 + d)
}
`)

	rt := NewRuntime(dir, nil)
	scorer, err := rt.Scorer("closeness.tengo")
	require.NoError(t, err)

	w := ecs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, component.Transform{}))
	require.NoError(t, ecs.Add(w, e, targeting.TargetComponent, targeting.Target{}))

	require.Equal(t, 0.0, scorer.Score(e, w))

	other := w.CreateEntity()
	require.NoError(t, ecs.Add(w, other, component.TransformComponent, component.Transform{X: 3}))
	tgt, ok := ecs.Get(w, e, targeting.TargetComponent)
	require.True(t, ok)
	tgt.Entity = other

	require.InDelta(t, 0.25, scorer.Score(e, w), 1e-9)
}

func TestCompileErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.tengo", `tick := func(env, state { return "success" }`)

	rt := NewRuntime(dir, nil)
	_, err := rt.Leaf("broken.tengo")
	require.Error(t, err)
}

func TestMissingScriptFile(t *testing.T) {
	rt := NewRuntime(t.TempDir(), nil)
	_, err := rt.Leaf("nope.tengo")
	require.ErrorContains(t, err, "read")
}

func TestInvalidateRecompiles(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "swap.tengo", `
tick := func(env, state) {
	return "failure"
}
`)

	rt := NewRuntime(dir, nil)
	w := ecs.NewWorld()
	e := w.CreateEntity()

	leaf, err := rt.Leaf("swap.tengo")
	require.NoError(t, err)
	require.Equal(t, behavior.Failure, leaf.Tick(e, w))

	writeScript(t, dir, "swap.tengo", `
tick := func(env, state) {
	return "success"
}
`)
	rt.Invalidate("swap.tengo")

	reloaded, err := rt.Leaf("swap.tengo")
	require.NoError(t, err)
	require.Equal(t, behavior.Success, reloaded.Tick(e, w))
}
