package constants

const (

	// RingCount is the number of rotatable rings
	RingCount int = 8
	// InnermostRing is the index of the innermost ring
	InnermostRing int = 1
	// OutermostRing is the index of the outermost ring
	OutermostRing int = 8
	// NoSelection means no ring is currently selected
	NoSelection int = 0

	// PropagationFactor is the fraction of a rotation passed on to each
	// immediate neighbor of the rotated ring
	PropagationFactor float64 = 0.5

	// WidestNotchWidth is the angular width of ring 1's notch
	WidestNotchWidth float64 = 75.0
	// NarrowestNotchWidth is the angular width of ring 8's notch
	NarrowestNotchWidth float64 = 22.5
	// WinSpanTolerance is the covering-span threshold for a win, half the
	// narrowest notch width
	WinSpanTolerance float64 = NarrowestNotchWidth / 2

	// DefaultShuffleCount is the number of moves in a standard shuffle
	DefaultShuffleCount int = 25
	// ShuffleDeltaStep is the granularity of shuffle rotation magnitudes
	ShuffleDeltaStep float64 = 30.0
	// ShuffleDeltaMinSteps is the smallest shuffle magnitude in steps (120 degrees)
	ShuffleDeltaMinSteps int = 4
	// ShuffleDeltaMaxSteps is the largest shuffle magnitude in steps (330 degrees)
	ShuffleDeltaMaxSteps int = 11

	// SolveTargetAngle is the reference angle rings are solved toward
	SolveTargetAngle float64 = 0.0
	// SolveEpsilon is the offset in degrees below which a ring is not worth moving
	SolveEpsilon float64 = 0.5
	// SolveMaxIterations caps the iterative solver loop
	SolveMaxIterations int = 200
)
