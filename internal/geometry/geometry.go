package geometry

import "sort"

// Point is an integer grid coordinate. It is used both for a piece's local
// cell offsets and for absolute board positions.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Orthogonal holds the four edge-neighbour offsets
var Orthogonal = [4]Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Diagonal holds the four corner-neighbour offsets
var Diagonal = [4]Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}

// RotateClockwise rotates every cell by 90 degrees with (x,y) -> (y,-x) and
// normalizes the result. Four rotations return the original set.
func RotateClockwise(cells []Point) []Point {
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: c.Y, Y: -c.X}
	}
	return Normalize(out)
}

// MirrorHorizontal mirrors every cell with (x,y) -> (-x,y) and normalizes the result
func MirrorHorizontal(cells []Point) []Point {
	out := make([]Point, len(cells))
	for i, c := range cells {
		out[i] = Point{X: -c.X, Y: c.Y}
	}
	return Normalize(out)
}

// Normalize translates the cells so that the minimum x and minimum y are both 0
func Normalize(cells []Point) []Point {
	out := make([]Point, len(cells))
	if len(cells) == 0 {
		return out
	}
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		minX = min(minX, c.X)
		minY = min(minY, c.Y)
	}
	for i, c := range cells {
		out[i] = Point{X: c.X - minX, Y: c.Y - minY}
	}
	return out
}

// Transform applies the mirror (when flipped) and then rotation clockwise
// quarter turns to base. The flip always happens before the rotation.
func Transform(base []Point, rotation int, flipped bool) []Point {
	cells := Normalize(base)
	if flipped {
		cells = MirrorHorizontal(cells)
	}
	for range ((rotation % 4) + 4) % 4 {
		cells = RotateClockwise(cells)
	}
	return cells
}

// Occupied translates transformed cells to the absolute positions they cover
// when the piece's local origin is placed at anchor
func Occupied(transformed []Point, anchor Point) []Point {
	out := make([]Point, len(transformed))
	for i, c := range transformed {
		out[i] = anchor.Add(c)
	}
	return out
}

// Bounds returns the width and height of the bounding box of normalized cells
func Bounds(cells []Point) (width, height int) {
	for _, c := range cells {
		width = max(width, c.X+1)
		height = max(height, c.Y+1)
	}
	return width, height
}

// Sorted returns a copy of cells ordered by row then column
func Sorted(cells []Point) []Point {
	out := make([]Point, len(cells))
	copy(out, cells)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// SameSet reports whether a and b contain the same cells, ignoring order
func SameSet(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[Point]int, len(a))
	for _, c := range a {
		set[c]++
	}
	for _, c := range b {
		if set[c] == 0 {
			return false
		}
		set[c]--
	}
	return true
}

// HasDuplicates reports whether any cell appears more than once
func HasDuplicates(cells []Point) bool {
	seen := make(map[Point]struct{}, len(cells))
	for _, c := range cells {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}

// IsConnected reports whether the cells form a single edge-connected region.
// An empty set is not connected.
func IsConnected(cells []Point) bool {
	if len(cells) == 0 {
		return false
	}
	set := make(map[Point]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}

	visited := map[Point]bool{cells[0]: true}
	stack := []Point{cells[0]}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range Orthogonal {
			next := cur.Add(d)
			if set[next] && !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return len(visited) == len(set)
}

// Orientations returns the distinct (rotation, flipped) pairs of base, in
// flip-major order, skipping transforms that produce an already-seen shape
func Orientations(base []Point) []Orientation {
	var out []Orientation
	var seen [][]Point
	for _, flipped := range []bool{false, true} {
		for rotation := range 4 {
			cells := Transform(base, rotation, flipped)
			duplicate := false
			for _, s := range seen {
				if SameSet(s, cells) {
					duplicate = true
					break
				}
			}
			if duplicate {
				continue
			}
			seen = append(seen, cells)
			out = append(out, Orientation{Rotation: rotation, Flipped: flipped, Cells: cells})
		}
	}
	return out
}

// Orientation is one transform of a base shape together with its cells
type Orientation struct {
	Rotation int
	Flipped  bool
	Cells    []Point
}
