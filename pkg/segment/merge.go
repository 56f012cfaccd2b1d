package segment

import (
	"math"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"gonum.org/v1/gonum/spatial/r3"
)

// MergeDuplicatePlanes resolves spec.md §9's open question on input
// segments sharing the same supporting plane: "merge such segments at
// entry (union of points) before constructing πf, since the
// arrangement treats each plane once."
//
// Two segments are considered duplicates when their planes' normals
// are within angleTolerance (radians) and their offsets differ by at
// most distTolerance. Merged planes are refit as the point-count
// weighted average of the constituents' planes, then re-normalized.
func MergeDuplicatePlanes(segments []Segment, angleTolerance, distTolerance float64) []Segment {
	merged := make([]Segment, 0, len(segments))
	used := make([]bool, len(segments))

	for i := range segments {
		if used[i] {
			continue
		}
		group := []int{i}
		for j := i + 1; j < len(segments); j++ {
			if used[j] {
				continue
			}
			if samePlane(segments[i].Plane, segments[j].Plane, angleTolerance, distTolerance) {
				group = append(group, j)
				used[j] = true
			}
		}
		used[i] = true

		if len(group) == 1 {
			merged = append(merged, segments[i])
			continue
		}
		merged = append(merged, mergeGroup(segments, group))
	}

	return merged
}

func samePlane(a, b inexact.Plane, angleTolerance, distTolerance float64) bool {
	cosAngle := r3.Dot(a.Normal, b.Normal)
	if cosAngle < 0 {
		// Opposite-facing normals on the same geometric plane are
		// still the same supporting plane; flip b's sign for the
		// comparison.
		cosAngle = -cosAngle
		b = inexact.Plane{Normal: r3.Scale(-1, b.Normal), D: -b.D}
	}
	if math.Acos(math.Min(cosAngle, 1)) > angleTolerance {
		return false
	}
	return absf(a.D-b.D) <= distTolerance
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func mergeGroup(segments []Segment, group []int) Segment {
	var allPoints []Point
	var normalSum r3.Vec
	var dSum float64
	var weight float64

	for _, idx := range group {
		s := segments[idx]
		w := float64(len(s.Points))
		if w == 0 {
			w = 1
		}
		n, d := s.Plane.Normal, s.Plane.D
		if r3.Dot(n, segments[group[0]].Plane.Normal) < 0 {
			// Orient opposite-facing duplicates like the group's first
			// plane so their normals add up instead of cancelling.
			n, d = r3.Scale(-1, n), -d
		}
		normalSum = r3.Add(normalSum, r3.Scale(w, n))
		dSum += w * d
		weight += w
		allPoints = append(allPoints, s.Points...)
	}

	avgD := dSum / weight
	avgPlane := inexact.NewPlane(normalSum.X, normalSum.Y, normalSum.Z, avgD)
	return New(allPoints, avgPlane)
}
