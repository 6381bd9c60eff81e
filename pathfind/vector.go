package pathfind

// Vector3 is a decompressed world position.
type Vector3 struct {
	X, Y, Z float32
}

// DistanceSquared returns the squared euclidean distance between v and o.
func (v Vector3) DistanceSquared(o Vector3) float32 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

func minMax(a, b float32) (float32, float32) {
	if a > b {
		return b, a
	}
	return a, b
}
