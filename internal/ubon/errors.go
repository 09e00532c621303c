package ubon

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and New for unusable configurations.
	ErrInvalidConfig = errors.New("ubon: invalid config")

	// ErrShapeMismatch is returned when features or augmentation do not match
	// the node count of the model.
	ErrShapeMismatch = errors.New("ubon: shape mismatch")
)
