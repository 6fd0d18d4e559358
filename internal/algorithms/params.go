package algorithms

import (
	"fmt"
	"math"
	"strings"

	"image-processing-engine/internal/core"
)

// Params is the scalar configuration record shared by every operation.
// Each operation reads only the fields listed in its ParameterInfo.
type Params struct {
	ConstantValue  int     `json:"constantValue" toml:"constant_value"`
	BlendFactor    float64 `json:"blendFactor" toml:"blend_factor"`
	ThresholdValue int     `json:"thresholdValue" toml:"threshold_value"`
	KernelSize     int     `json:"kernelSize" toml:"kernel_size"`
	OrderValue     int     `json:"orderValue" toml:"order_value"`
	SigmaValue     float64 `json:"sigmaValue" toml:"sigma_value"`
}

// DefaultParams returns the interactive tool's starting values
func DefaultParams() Params {
	return Params{
		ConstantValue:  50,
		BlendFactor:    0.5,
		ThresholdValue: 127,
		KernelSize:     3,
		OrderValue:     4,
		SigmaValue:     1.0,
	}
}

const maxKernelSize = 51

// ParamsFromMap overlays values from m onto base. Keys may be camelCase
// ("kernelSize") or snake_case ("kernel_size").
func ParamsFromMap(base Params, m map[string]interface{}) (Params, error) {
	p := base
	for key, val := range m {
		var err error
		switch normalizeKey(key) {
		case "constantvalue":
			p.ConstantValue, err = toInt(val)
		case "blendfactor":
			p.BlendFactor, err = toFloat(val)
		case "thresholdvalue":
			p.ThresholdValue, err = toInt(val)
		case "kernelsize":
			p.KernelSize, err = toInt(val)
		case "ordervalue":
			p.OrderValue, err = toInt(val)
		case "sigmavalue":
			p.SigmaValue, err = toFloat(val)
		default:
			return base, fmt.Errorf("%w: unknown parameter: %s", core.ErrInvalidParameter, key)
		}
		if err != nil {
			return base, fmt.Errorf("%w: %s: %v", core.ErrInvalidParameter, key, err)
		}
	}
	return p, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}

func toInt(val interface{}) (int, error) {
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("expected an integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", val)
	}
}

func toFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", val)
	}
}

func validateConstant(op string, k int) error {
	if k < 0 || k > 255 {
		return core.Errorf(op, core.ErrInvalidParameter, "constantValue must be between 0 and 255, got %d", k)
	}
	return nil
}

func validateBlend(op string, t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return core.Errorf(op, core.ErrInvalidParameter, "blendFactor must be between 0.0 and 1.0, got %v", t)
	}
	return nil
}

func validateThreshold(op string, t int) error {
	if t < 0 || t > 255 {
		return core.Errorf(op, core.ErrInvalidParameter, "thresholdValue must be between 0 and 255, got %d", t)
	}
	return nil
}

func validateKernelSize(op string, size int) error {
	if size < 1 || size > maxKernelSize {
		return core.Errorf(op, core.ErrInvalidParameter, "kernelSize must be between 1 and %d, got %d", maxKernelSize, size)
	}
	if size%2 == 0 {
		return core.Errorf(op, core.ErrInvalidParameter, "kernelSize must be odd, got %d", size)
	}
	return nil
}

func validateSigma(op string, sigma float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
		return core.Errorf(op, core.ErrInvalidParameter, "sigmaValue must be greater than 0, got %v", sigma)
	}
	return nil
}
