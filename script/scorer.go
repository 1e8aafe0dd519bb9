package script

import (
	"go.uber.org/zap"

	"github.com/milk9111/aitoolkit/ecs"
	"github.com/milk9111/aitoolkit/utility"
)

// Scorer loads a utility scorer script. The script must define
// score(env, state) returning a number. A script error scores zero.
func (r *Runtime) Scorer(path string) (utility.Scorer, error) {
	p, err := r.load(path, scorerDispatch)
	if err != nil {
		return nil, err
	}
	return &scorer{program: p}, nil
}

type scorer struct {
	program *program
}

func (s *scorer) Score(e ecs.Entity, w *ecs.World) float64 {
	v, err := s.program.run(e, w, "__score")
	if err != nil {
		s.program.log.Warn("script scorer error",
			zap.String("script", s.program.path),
			zap.Stringer("entity", e),
			zap.Error(err))
		return 0
	}
	if v == nil {
		return 0
	}
	switch val := v.Value().(type) {
	case float64:
		return val
	case int64:
		return float64(val)
	case int:
		return float64(val)
	default:
		return 0
	}
}
