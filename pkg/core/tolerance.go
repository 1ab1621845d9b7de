package core

// Tolerances shared by the intersection, shading and tracing code. They all
// carry the same value; the separate names document which test uses which.
const (
	// SurfaceEpsilon bounds the distance (or area difference) at which a point
	// still counts as lying on a surface.
	SurfaceEpsilon = 1e-3

	// ParallelEpsilon bounds |dir·normal| below which a ray is treated as
	// parallel to a plane.
	ParallelEpsilon = 1e-3

	// OffsetEpsilon is how far secondary and shadow ray origins are pushed off
	// a surface along its normal.
	OffsetEpsilon = 1e-3

	// QuadricSurfaceTolerance bounds |pᵀMp| for points on a quadric.
	QuadricSurfaceTolerance = 10 * SurfaceEpsilon
)
