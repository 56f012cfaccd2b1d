package script

import (
	"github.com/chazu/lignin/pkg/reconstruct"
	"github.com/chazu/lignin/pkg/segment"
)

// Scene is the output of evaluating a scene script: the planar segments
// declared with (segment ...), plus any reconstruction config overrides
// declared with (config ...).
type Scene struct {
	Segments []segment.Segment
	Config   reconstruct.Config
}
