package script

import (
	"strings"

	"github.com/d5/tengo/v2"
	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/behavior"
	"github.com/milk9111/aitoolkit/ecs"
)

// Leaf loads a behavior leaf script. The script must define
// tick(env, state) returning "success", "failure", "running", or a bool.
// A script error during a tick reports Failure; ticks never fail.
func (r *Runtime) Leaf(path string) (behavior.Node, error) {
	p, err := r.load(path, leafDispatch)
	if err != nil {
		return nil, err
	}
	return &leaf{program: p}, nil
}

type leaf struct {
	program *program
}

func (l *leaf) Tick(e ecs.Entity, w *ecs.World) behavior.Status {
	v, err := l.program.run(e, w, "__result")
	if err != nil {
		l.program.log.Warn("script leaf error",
			zap.String("script", l.program.path),
			zap.Stringer("entity", e),
			zap.Error(err))
		return behavior.Failure
	}
	return statusOf(v)
}

func statusOf(v *tengo.Variable) behavior.Status {
	if v == nil {
		return behavior.Failure
	}
	switch val := v.Value().(type) {
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "success":
			return behavior.Success
		case "running":
			return behavior.Running
		default:
			return behavior.Failure
		}
	case bool:
		if val {
			return behavior.Success
		}
		return behavior.Failure
	default:
		return behavior.Failure
	}
}
