package meshio

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// WriteOBJ writes m in Wavefront OBJ format: one "v x y z" line per
// vertex, then one "f i j k..." line per face (1-indexed, per the OBJ
// convention).
func WriteOBJ(w io.Writer, m Mesh) error {
	for _, v := range m.Vertices {
		if _, err := fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z); err != nil {
			return errors.Wrap(err, "meshio: write obj vertex")
		}
	}
	for _, face := range m.Faces {
		if _, err := io.WriteString(w, "f"); err != nil {
			return errors.Wrap(err, "meshio: write obj face")
		}
		for _, idx := range face {
			if _, err := fmt.Fprintf(w, " %d", idx+1); err != nil {
				return errors.Wrap(err, "meshio: write obj face")
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return errors.Wrap(err, "meshio: write obj face")
		}
	}
	return nil
}
