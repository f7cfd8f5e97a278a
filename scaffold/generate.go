package scaffold

import (
	"time"

	"github.com/google/uuid"

	"github.com/entforge/entforge"
)

// Output is one successfully generated artifact.
type Output struct {
	Unit    string
	Path    string
	Content string
}

// Failure records one unit that could not be generated.
type Failure struct {
	Unit    string
	Kind    string
	Message string
}

// Result accumulates outputs and failures of one generation run. A failing
// unit never aborts its siblings; the caller decides whether partial output is
// acceptable.
type Result struct {
	ID        string
	Entity    string
	Outputs   []Output
	Failures  []Failure
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// OK reports whether every unit rendered.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Generate renders every unit of the plan. Templates are parsed through the
// engine's content-keyed cache, so units sharing a template parse it once.
// Parse failures abort only the affected unit before any render is attempted;
// render failures are likewise per-unit.
func Generate(eng *entforge.Engine, plan *Plan) *Result {
	result := &Result{
		ID:        uuid.New().String(),
		Entity:    plan.Entity,
		StartTime: time.Now(),
	}

	for _, unit := range plan.Units {
		tmpl, err := eng.Parse(unit.Source)
		if err != nil {
			result.Failures = append(result.Failures, failureFor(unit, err))
			continue
		}
		content, err := tmpl.Render(unit.Context)
		if err != nil {
			result.Failures = append(result.Failures, failureFor(unit, err))
			continue
		}
		result.Outputs = append(result.Outputs, Output{
			Unit:    unit.Name,
			Path:    unit.Path,
			Content: content,
		})
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	return result
}

func failureFor(unit Unit, err error) Failure {
	return Failure{
		Unit:    unit.Name,
		Kind:    entforge.ErrorKind(err),
		Message: err.Error(),
	}
}
