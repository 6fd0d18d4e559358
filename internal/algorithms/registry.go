package algorithms

import (
	"image-processing-engine/internal/core"
)

var (
	paramConstant = ParameterInfo{
		Name:        "constantValue",
		Type:        "int",
		Min:         0,
		Max:         255,
		Default:     50,
		Description: "Brightness offset, or scale base where 50 is identity",
	}
	paramBlend = ParameterInfo{
		Name:        "blendFactor",
		Type:        "float",
		Min:         0.0,
		Max:         1.0,
		Default:     0.5,
		Description: "Weight of the first image",
	}
	paramThreshold = ParameterInfo{
		Name:        "thresholdValue",
		Type:        "int",
		Min:         0,
		Max:         255,
		Default:     127,
		Description: "Luma above this value becomes white",
	}
	paramKernel = ParameterInfo{
		Name:        "kernelSize",
		Type:        "int",
		Min:         1,
		Max:         maxKernelSize,
		Default:     3,
		Description: "Neighborhood size (must be odd)",
	}
	paramOrder = ParameterInfo{
		Name:        "orderValue",
		Type:        "int",
		Min:         0,
		Max:         maxKernelSize*maxKernelSize - 1,
		Default:     4,
		Description: "Rank in the sorted neighborhood, clamped to kernelSize²-1",
	}
	paramSigma = ParameterInfo{
		Name:        "sigmaValue",
		Type:        "float",
		Min:         0.1,
		Max:         10.0,
		Default:     1.0,
		Description: "Standard deviation of the Gaussian",
	}
)

// Parameters lists every Params field an operation can read, in display order
func Parameters() []ParameterInfo {
	return []ParameterInfo{paramConstant, paramBlend, paramThreshold, paramKernel, paramOrder, paramSigma}
}

func binaryOp(fn func(a, b *core.PixelBuffer) (*core.PixelBuffer, error)) func(a, b *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
	return func(a, b *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
		return fn(a, b)
	}
}

func unaryOp(fn func(a *core.PixelBuffer) (*core.PixelBuffer, error)) func(a, _ *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
	return func(a, _ *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
		return fn(a)
	}
}

func sizedOp(fn func(a *core.PixelBuffer, size int) (*core.PixelBuffer, error)) func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
	return func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
		return fn(a, p.KernelSize)
	}
}

func constantOp(fn func(a *core.PixelBuffer, k int) (*core.PixelBuffer, error)) func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
	return func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
		return fn(a, p.ConstantValue)
	}
}

func kernelOp(k Kernel) func(a, _ *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
	return func(a, _ *core.PixelBuffer, _ Params) (*core.PixelBuffer, error) {
		return Convolve(a, k)
	}
}

func morphologyOp(op MorphOp) *operation {
	return &operation{
		name:     op.String(),
		category: CategoryMorphology,
		operands: 1,
		params:   []ParameterInfo{paramKernel},
		run: func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
			return Morphology(a, op, p.KernelSize)
		},
	}
}

func init() {
	ops := []*operation{
		// Arithmetic
		{name: "add", category: CategoryArithmetic, operands: 2,
			description: "Saturating sum of two images", run: binaryOp(Add)},
		{name: "subtract", category: CategoryArithmetic, operands: 2,
			description: "Saturating difference of two images", run: binaryOp(Subtract)},
		{name: "addConstant", category: CategoryArithmetic, operands: 1, params: []ParameterInfo{paramConstant},
			description: "Brighten by a constant", run: constantOp(AddConstant)},
		{name: "subtractConstant", category: CategoryArithmetic, operands: 1, params: []ParameterInfo{paramConstant},
			description: "Darken by a constant", run: constantOp(SubtractConstant)},
		{name: "multiply", category: CategoryArithmetic, operands: 1, params: []ParameterInfo{paramConstant},
			description: "Scale by constantValue/50", run: constantOp(Multiply)},
		{name: "divide", category: CategoryArithmetic, operands: 1, params: []ParameterInfo{paramConstant},
			description: "Divide by constantValue/50", run: constantOp(Divide),
			check: func(op string, p Params) error {
				if p.ConstantValue == 0 {
					return core.Errorf(op, core.ErrInvalidParameter, "divide factor resolves to zero")
				}
				return nil
			}},
		{name: "blend", category: CategoryArithmetic, operands: 2, params: []ParameterInfo{paramBlend},
			description: "Linear blend of two images",
			run: func(a, b *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
				return Blend(a, b, p.BlendFactor)
			}},
		{name: "average", category: CategoryArithmetic, operands: 2,
			description: "Mean of two images", run: binaryOp(Average)},
		{name: "difference", category: CategoryArithmetic, operands: 2,
			description: "Absolute difference of two images", run: binaryOp(Difference)},

		// Logic
		{name: "and", category: CategoryLogic, operands: 2,
			description: "Logical AND of binarized images", run: binaryOp(And)},
		{name: "or", category: CategoryLogic, operands: 2,
			description: "Logical OR of binarized images", run: binaryOp(Or)},
		{name: "xor", category: CategoryLogic, operands: 2,
			description: "Logical XOR of binarized images", run: binaryOp(Xor)},
		{name: "not", category: CategoryLogic, operands: 1,
			description: "Inverted binarized image", run: unaryOp(Not)},

		// Transform
		{name: "grayscale", category: CategoryTransform, operands: 1,
			description: "Luma grayscale", run: unaryOp(Grayscale)},
		{name: "flipHorizontal", category: CategoryTransform, operands: 1,
			description: "Mirror left to right", run: unaryOp(FlipHorizontal)},
		{name: "flipVertical", category: CategoryTransform, operands: 1,
			description: "Mirror top to bottom", run: unaryOp(FlipVertical)},

		// Histogram
		{name: "equalize", category: CategoryHistogram, operands: 1,
			description: "Per-channel histogram equalization", run: unaryOp(Equalize)},
		{name: "threshold", category: CategoryHistogram, operands: 1, params: []ParameterInfo{paramThreshold},
			description: "Binarize by luma",
			run: func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
				return Threshold(a, p.ThresholdValue)
			}},

		// Filters
		{name: "mean", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel},
			description: "Neighborhood average", run: sizedOp(Mean)},
		{name: "median", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel},
			description: "Neighborhood median", run: sizedOp(Median)},
		{name: "min", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel},
			description: "Neighborhood minimum", run: sizedOp(Min)},
		{name: "max", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel},
			description: "Neighborhood maximum", run: sizedOp(Max)},
		{name: "order", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel, paramOrder},
			description: "Generalized rank filter",
			run: func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
				return Order(a, p.KernelSize, p.OrderValue)
			}},
		{name: "conservative", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel},
			description: "Conservative smoothing (impulse suppression)", run: sizedOp(Conservative),
			check: func(op string, p Params) error {
				if p.KernelSize < 3 {
					return core.Errorf(op, core.ErrInvalidParameter, "kernelSize must be at least 3, got %d", p.KernelSize)
				}
				return nil
			}},
		{name: "gaussian", category: CategoryFilters, operands: 1, params: []ParameterInfo{paramKernel, paramSigma},
			description: "Gaussian blur with a synthesized kernel",
			run: func(a, _ *core.PixelBuffer, p Params) (*core.PixelBuffer, error) {
				return GaussianBlur(a, p.KernelSize, p.SigmaValue)
			}},
		{name: "gaussian3x3", category: CategoryFilters, operands: 1,
			description: "Gaussian blur with the fixed 3x3 kernel", run: kernelOp(Gaussian3x3)},

		// Edges
		{name: "prewittX", category: CategoryEdges, operands: 1,
			description: "Prewitt horizontal gradient", run: kernelOp(PrewittX)},
		{name: "prewittY", category: CategoryEdges, operands: 1,
			description: "Prewitt vertical gradient", run: kernelOp(PrewittY)},
		{name: "sobelX", category: CategoryEdges, operands: 1,
			description: "Sobel horizontal gradient", run: kernelOp(SobelX)},
		{name: "sobelY", category: CategoryEdges, operands: 1,
			description: "Sobel vertical gradient", run: kernelOp(SobelY)},
		{name: "laplacian", category: CategoryEdges, operands: 1,
			description: "Laplacian second derivative", run: kernelOp(Laplacian)},
	}

	morph := map[MorphOp]string{
		MorphDilate:  "Grow foreground by a disk",
		MorphErode:   "Shrink foreground by a disk",
		MorphOpen:    "Erosion followed by dilation",
		MorphClose:   "Dilation followed by erosion",
		MorphContour: "Foreground minus its erosion",
	}
	for op, description := range morph {
		m := morphologyOp(op)
		m.description = description
		ops = append(ops, m)
	}

	for _, op := range ops {
		Register(op.name, op)
	}
}
