package cloth

import "errors"

// Construction-time parameter errors.
var (
	// ErrBadDimensions indicates a non-positive column or row count.
	ErrBadDimensions = errors.New("cloth: grid dimensions must be positive")

	// ErrBadResting indicates a non-positive resting distance.
	ErrBadResting = errors.New("cloth: resting distance must be positive")

	// ErrBadStiffness indicates a stiffness outside (0, 1].
	ErrBadStiffness = errors.New("cloth: stiffness must be in (0, 1]")

	// ErrBadGravity indicates a negative gravity.
	ErrBadGravity = errors.New("cloth: gravity must not be negative")

	// ErrBadBounds indicates non-positive world bounds.
	ErrBadBounds = errors.New("cloth: world bounds must be positive")

	// ErrBadRadius indicates a negative pointer radius.
	ErrBadRadius = errors.New("cloth: pointer radius must not be negative")

	// ErrBadPasses indicates a relaxation pass count below one.
	ErrBadPasses = errors.New("cloth: relaxation passes must be at least 1")
)
