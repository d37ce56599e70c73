package compose

// Default expansion limits. They bound worst-case CPU and memory for
// adversarial or accidentally cyclic pattern definitions, turning what would
// otherwise be a hang or stack overflow into a clean typed error.
const (
	// DefaultMaxRecursionDepth caps the pattern reference chain, counting
	// the root pattern itself.
	DefaultMaxRecursionDepth = 64
	// DefaultMaxTimeListLen caps how many rows a single time expression may
	// resolve to.
	DefaultMaxTimeListLen = 50000
	// DefaultMaxCellsPerPattern caps cell writes across one whole expansion,
	// references included.
	DefaultMaxCellsPerPattern = 50000
	// DefaultMaxPatternStringLen caps the raw length of a step-mask string.
	DefaultMaxPatternStringLen = 100000
)

// Limits carries the safety bounds enforced during one expansion.
type Limits struct {
	MaxRecursionDepth   int
	MaxTimeListLen      int
	MaxCellsPerPattern  int
	MaxPatternStringLen int

	// DetectRefCycles makes a pattern reference fail as soon as the referee
	// is already on the reference stack, instead of waiting for the depth
	// cap. Off by default: a self-reference is then reported as a depth
	// overflow, which matches the depth-only guard the limits were designed
	// around.
	DetectRefCycles bool
}

// DefaultLimits returns the standard bounds used by Expand.
func DefaultLimits() Limits {
	return Limits{
		MaxRecursionDepth:   DefaultMaxRecursionDepth,
		MaxTimeListLen:      DefaultMaxTimeListLen,
		MaxCellsPerPattern:  DefaultMaxCellsPerPattern,
		MaxPatternStringLen: DefaultMaxPatternStringLen,
	}
}
