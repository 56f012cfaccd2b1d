package script

import (
	"fmt"
	"strings"

	"github.com/chazu/lignin/pkg/kernel/inexact"
	"github.com/chazu/lignin/pkg/segment"
	zygo "github.com/glycerine/zygomys/zygo"
	"gonum.org/v1/gonum/spatial/r3"
)

// kwPrefix is the marker preprocessSource prepends when it rewrites a
// :keyword into a string literal; a plain string literal never collides
// with it in practice.
const kwPrefix = "__kw_"

type sexpVec3 struct{ vec r3.Vec }

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpPlane struct{ plane inexact.Plane }

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(plane %g %g %g %g)", p.plane.Normal.X, p.plane.Normal.Y, p.plane.Normal.Z, p.plane.D)
}
func (p *sexpPlane) Type() *zygo.RegisteredType { return nil }

type sexpPoint struct{ point segment.Point }

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %g %g %g)", p.point.Position.X, p.point.Position.Y, p.point.Position.Z)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list, matching the teacher DSL's own keyword-parsing convention.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T", s)
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T", s)
}

func toVec3(s zygo.Sexp) (r3.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return r3.Vec{}, fmt.Errorf("expected vec3, got %T", s)
}

func toPlane(s zygo.Sexp) (inexact.Plane, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.plane, nil
	}
	return inexact.Plane{}, fmt.Errorf("expected plane, got %T", s)
}

func toPoint(s zygo.Sexp) (segment.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.point, nil
	}
	return segment.Point{}, fmt.Errorf("expected point, got %T", s)
}

// registerBuiltins installs the scene DSL's builtins into a zygomys
// environment, populating scene as the script runs.
func registerBuiltins(env *zygo.Zlisp, scene *Scene) {
	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: r3.Vec{X: x, Y: y, Z: z}}, nil
	})

	// (plane :normal (vec3 0 0 1) :offset -0.5)
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		var normal r3.Vec
		var offset float64
		if v, ok := pa.kw["normal"]; ok {
			n, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: normal: %w", err)
			}
			normal = n
		}
		if v, ok := pa.kw["offset"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("plane: offset: %w", err)
			}
			offset = f
		}
		return &sexpPlane{plane: inexact.NewPlane(normal.X, normal.Y, normal.Z, offset)}, nil
	})

	// (point x y z)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("point requires 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: z: %w", err)
		}
		return &sexpPoint{point: segment.Point{Position: r3.Vec{X: x, Y: y, Z: z}, SegmentIndex: -1}}, nil
	})

	// (segment a-plane (point ...) (point ...) ...)
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 4 {
			return zygo.SexpNull, fmt.Errorf("segment requires a plane and at least 3 points, got %d arguments", len(args))
		}
		plane, err := toPlane(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: plane: %w", err)
		}
		points := make([]segment.Point, 0, len(args)-1)
		for _, a := range args[1:] {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("segment: point: %w", err)
			}
			points = append(points, p)
		}
		scene.Segments = append(scene.Segments, segment.New(points, plane))
		return zygo.SexpNull, nil
	})

	// (config :fit 0.43 :coverage 0.27 :complexity 0.30 :margin 0.05
	//         :include-bbox-faces true)
	env.AddFunction("config", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if v, ok := pa.kw["fit"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("config: fit: %w", err)
			}
			scene.Config.Weights.Fit = f
		}
		if v, ok := pa.kw["coverage"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("config: coverage: %w", err)
			}
			scene.Config.Weights.Cov = f
		}
		if v, ok := pa.kw["complexity"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("config: complexity: %w", err)
			}
			scene.Config.Weights.Complexity = f
		}
		if v, ok := pa.kw["margin"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("config: margin: %w", err)
			}
			scene.Config.Margin = f
		}
		if v, ok := pa.kw["include-bbox-faces"]; ok {
			b, err := toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("config: include-bbox-faces: %w", err)
			}
			scene.Config.IncludeBBoxFaces = b
		}
		return zygo.SexpNull, nil
	})
}
