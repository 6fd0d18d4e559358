// Operation registry and the single apply entry point
package algorithms

import (
	"fmt"
	"sort"

	"image-processing-engine/internal/core"
)

// Algorithm defines the interface for image processing operations
type Algorithm interface {
	Apply(primary, secondary *core.PixelBuffer, params Params) (*core.PixelBuffer, error)
	GetName() string
	GetDescription() string
	GetCategory() string
	// Operands is 1 for unary operations and 2 for operations that need a second image
	Operands() int
	Validate(params Params) error
	GetParameterInfo() []ParameterInfo
}

// ParameterInfo describes a parameter for UI generation
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "int", "float"
	Min         interface{} `json:"min,omitempty"`
	Max         interface{} `json:"max,omitempty"`
	Default     interface{} `json:"default"`
	Description string      `json:"description"`
}

// Categories in display order
const (
	CategoryArithmetic = "Arithmetic"
	CategoryLogic      = "Logic"
	CategoryTransform  = "Transform"
	CategoryHistogram  = "Histogram"
	CategoryFilters    = "Filters"
	CategoryEdges      = "Edges"
	CategoryMorphology = "Morphology"
)

// CategoryOrder lists every category in display order
var CategoryOrder = []string{
	CategoryArithmetic,
	CategoryLogic,
	CategoryTransform,
	CategoryHistogram,
	CategoryFilters,
	CategoryEdges,
	CategoryMorphology,
}

var algorithms = make(map[string]Algorithm)

func Register(name string, algorithm Algorithm) {
	algorithms[name] = algorithm
}

func Get(name string) (Algorithm, bool) {
	algorithm, exists := algorithms[name]
	return algorithm, exists
}

// Apply routes one call to the named operation. All validation (operation name,
// operands, dimensions, parameters) happens before any pixel is touched.
func Apply(name string, primary, secondary *core.PixelBuffer, params Params) (*core.PixelBuffer, error) {
	algorithm, exists := algorithms[name]
	if !exists {
		return nil, core.Errorf(name, core.ErrInvalidOperation, "algorithm not found: %s", name)
	}

	if primary == nil {
		return nil, core.Errorf(name, core.ErrMissingOperand, "first image is required")
	}
	if algorithm.Operands() == 2 {
		if secondary == nil {
			return nil, core.Errorf(name, core.ErrMissingOperand, "second image is required")
		}
		if !primary.SameSize(secondary) {
			return nil, core.Errorf(name, core.ErrDimensionMismatch, "%dx%d vs %dx%d",
				primary.Width, primary.Height, secondary.Width, secondary.Height)
		}
	}

	if err := algorithm.Validate(params); err != nil {
		return nil, err
	}

	return algorithm.Apply(primary, secondary, params)
}

func ValidateParameters(name string, params Params) error {
	algorithm, exists := algorithms[name]
	if !exists {
		return core.Errorf(name, core.ErrInvalidOperation, "algorithm not found: %s", name)
	}

	return algorithm.Validate(params)
}

func IsValidAlgorithm(name string) bool {
	_, exists := algorithms[name]
	return exists
}

// Names returns every registered operation name, sorted
func Names() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func GetAllAlgorithms() map[string]Algorithm {
	result := make(map[string]Algorithm)
	for name, algorithm := range algorithms {
		result[name] = algorithm
	}
	return result
}

// GetAlgorithmsByCategory groups operation names by category, each list sorted
func GetAlgorithmsByCategory() map[string][]string {
	result := make(map[string][]string)
	for _, name := range Names() {
		category := algorithms[name].GetCategory()
		result[category] = append(result[category], name)
	}
	return result
}

// operation adapts an engine function to the Algorithm interface
type operation struct {
	name        string
	description string
	category    string
	operands    int
	params      []ParameterInfo
	check       func(op string, p Params) error
	run         func(a, b *core.PixelBuffer, p Params) (*core.PixelBuffer, error)
}

func (o *operation) Apply(primary, secondary *core.PixelBuffer, params Params) (*core.PixelBuffer, error) {
	return o.run(primary, secondary, params)
}

func (o *operation) GetName() string                   { return o.name }
func (o *operation) GetDescription() string            { return o.description }
func (o *operation) GetCategory() string               { return o.category }
func (o *operation) Operands() int                     { return o.operands }
func (o *operation) GetParameterInfo() []ParameterInfo { return o.params }

func (o *operation) Validate(params Params) error {
	for _, info := range o.params {
		if err := validateParam(o.name, info.Name, params); err != nil {
			return err
		}
	}
	if o.check != nil {
		return o.check(o.name, params)
	}
	return nil
}

func validateParam(op, name string, p Params) error {
	switch name {
	case paramConstant.Name:
		return validateConstant(op, p.ConstantValue)
	case paramBlend.Name:
		return validateBlend(op, p.BlendFactor)
	case paramThreshold.Name:
		return validateThreshold(op, p.ThresholdValue)
	case paramKernel.Name:
		return validateKernelSize(op, p.KernelSize)
	case paramSigma.Name:
		return validateSigma(op, p.SigmaValue)
	case paramOrder.Name:
		// clamped by the filter itself
		return nil
	}
	return fmt.Errorf("unknown parameter %q for %s", name, op)
}
