package extract

import (
	"errors"
	"fmt"
)

// ErrUnsupportedModel is returned by Build for model names the builder does
// not produce.
var ErrUnsupportedModel = errors.New("model type is not produced by this builder")

// Import phases reported in ImportError.
const (
	PhaseCapabilities = "capability lookup"
	PhaseSourceSets   = "source set extraction"
	PhaseTargets      = "target extraction"
	PhaseAggregate    = "source set aggregation"
	PhaseValidate     = "model validation"
)

// ImportError describes why the model of a project could not be built.
type ImportError struct {
	Project string
	Phase   string
	Err     error
}

// Error implements the error interface for ImportError.
func (e *ImportError) Error() string {
	return fmt.Sprintf("Kotlin MPP import failed for project %q during %s: %v", e.Project, e.Phase, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ImportError) Unwrap() error {
	return e.Err
}
