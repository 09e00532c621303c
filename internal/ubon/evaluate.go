package ubon

import (
	"github.com/born-ml/ubon/internal/tensor"
	"github.com/pkg/errors"
)

// Evaluate builds a model for cfg in the precision named by cfg.DType and
// evaluates one graph per feature row.
//
// augmentation must be (cfg.Nodes, cfg.Nodes) and every feature row must
// have cfg.Nodes entries. At least one row is required.
func Evaluate(cfg Config, augmentation, features [][]float64) (LogAmplitude, error) {
	switch cfg.DType {
	case tensor.Float32:
		return evaluate[float32](cfg, augmentation, features)
	case tensor.Float64:
		return evaluate[float64](cfg, augmentation, features)
	default:
		return nil, errors.Wrapf(ErrInvalidConfig, "unsupported dtype %v", cfg.DType)
	}
}

func evaluate[T tensor.DType](cfg Config, augRows, featureRows [][]float64) (LogAmplitude, error) {
	aug, err := AugmentationFromRows(convertRows[T](augRows))
	if err != nil {
		return nil, err
	}
	model, err := New(cfg, aug)
	if err != nil {
		return nil, err
	}
	x, err := tensor.FromRows(convertRows[T](featureRows))
	if err != nil {
		return nil, errors.Wrapf(ErrShapeMismatch, "features: %v", err)
	}
	return model.Forward(x)
}

func convertRows[T tensor.DType](rows [][]float64) [][]T {
	out := make([][]T, len(rows))
	for i, row := range rows {
		out[i] = make([]T, len(row))
		for j, v := range row {
			out[i][j] = T(v)
		}
	}
	return out
}
