package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// trueNormal flips n so that it faces against the incident direction.
// The second return value is the absolute cosine between the two.
func trueNormal(incident, n core.Vec3) (core.Vec3, float64) {
	cosI := n.Dot(incident)
	if cosI > 0 {
		return n.Negate(), cosI
	}
	return n, -cosI
}

// Reflect mirrors incident about the surface normal. The normal ray is
// anchored at the hit point; the reflected ray starts just outside the
// surface on the incident side.
func Reflect(incident, normal core.Ray) core.Ray {
	n, cosI := trueNormal(incident.Direction, normal.Direction)
	dir := n.Multiply(2 * cosI).Add(incident.Direction)
	return core.NewRay(normal.Origin.Add(n.Multiply(core.OffsetEpsilon)), dir)
}

// Refract bends incident through the surface using Snell's law, going from
// a medium of index n1 into one of index n2. It returns false on total
// internal reflection. The refracted ray starts just inside the
// transmitting medium.
func Refract(incident, normal core.Ray, n1, n2 float64) (core.Ray, bool) {
	n, cosI := trueNormal(incident.Direction, normal.Direction)
	sinI := math.Sqrt(math.Max(0, 1-cosI*cosI))
	ratio := n1 / n2
	sinT := ratio * sinI
	if sinT > 1 {
		return core.Ray{}, false
	}
	cosT := math.Sqrt(1 - sinT*sinT)

	dir := incident.Direction.Add(n.Multiply(cosI)).Multiply(ratio).Subtract(n.Multiply(cosT))
	return core.NewRay(normal.Origin.Subtract(n.Multiply(core.OffsetEpsilon)), dir), true
}
