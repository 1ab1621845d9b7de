package core

import "math"

// SolveQuadratic solves a·t² + b·t + c = 0 and returns the roots in
// ascending order.
//
// Degenerate coefficients are handled without dividing by zero: a == 0 falls
// back to the linear root -c/b (returned twice), and a == b == 0 yields the
// root 0 only when c is also 0.
func SolveQuadratic(a, b, c float64) (float64, float64, bool) {
	if a == 0 {
		if b == 0 {
			if c == 0 {
				return 0, 0, true
			}
			return 0, 0, false
		}
		root := -c / b
		return root, root, true
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	x1 := (-b - sqrtD) * 0.5 / a
	x2 := (-b + sqrtD) * 0.5 / a
	return min(x1, x2), max(x1, x2), true
}
