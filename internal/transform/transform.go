// Package transform provides composable what-if edits to a portfolio
package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/gravityless/internal/domain"
)

// PortfolioTransform defines the interface for all portfolio transformations.
// Transforms never modify their input; Apply returns a changed copy.
type PortfolioTransform interface {
	// Apply returns a modified copy of base
	Apply(base *domain.Configuration) (*domain.Configuration, error)

	// Name returns a short identifier for this transform (e.g., "adjust_growth")
	Name() string

	// Description returns a human-readable description of what this transform does
	Description() string

	// Validate checks the parameters against base without applying anything
	Validate(base *domain.Configuration) error
}

// AllSources selects every source for transforms that accept a source selector
const AllSources = "*"

// ApplyTransforms applies transforms in order, each receiving the output of the previous one
func ApplyTransforms(base *domain.Configuration, transforms []PortfolioTransform) (*domain.Configuration, error) {
	if base == nil {
		return nil, fmt.Errorf("base portfolio cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms with "; "
func Describe(transforms []PortfolioTransform) string {
	parts := make([]string, 0, len(transforms))
	for _, t := range transforms {
		parts = append(parts, t.Description())
	}
	return strings.Join(parts, "; ")
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// matchSources returns the indexes of sources selected by sel. A source matches
// by ID or case-insensitive name; AllSources matches everything.
func matchSources(c *domain.Configuration, sel string) []int {
	var idx []int
	for i := range c.Sources {
		s := &c.Sources[i]
		if sel == AllSources || s.ID == sel || strings.EqualFold(s.Name, sel) {
			idx = append(idx, i)
		}
	}
	return idx
}

func validateSelector(name string, base *domain.Configuration, sel string) error {
	if sel == "" {
		return NewTransformError(name, "validate", "source cannot be empty", nil)
	}
	if base == nil {
		return NewTransformError(name, "validate", "base portfolio cannot be nil", nil)
	}
	if sel != AllSources && len(matchSources(base, sel)) == 0 {
		return NewTransformError(name, "validate", fmt.Sprintf("source %s not found in portfolio", sel), nil)
	}
	return nil
}
