package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/enum"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

type ColliderShape uint8

const (
	ShapeUnknown ColliderShape = iota
	ShapeAABB
	ShapeCircle
)

var ColliderShapes = enum.New("ColliderShapeName",
	enum.Pair[ColliderShape]{Name: "unknown", Value: ShapeUnknown},
	enum.Pair[ColliderShape]{Name: "unknown", Value: ShapeUnknown},
	enum.Pair[ColliderShape]{Name: "aabb", Value: ShapeAABB},
	enum.Pair[ColliderShape]{Name: "circle", Value: ShapeCircle},
)

/** @brief A collider in pivot-relative world units, Y up. */
type ColliderDesc struct {
	Shape       ColliderShape
	Center      math.Vec2
	HalfExtents math.Vec2
	Radius      float32
}

func vec2(v [2]float64) math.Vec2 {
	return math.NewVec2(float32(v[0]), float32(v[1]))
}

// ParseColliderDesc reads {shape, center, half_extents, radius}. Every field
// is optional.
func ParseColliderDesc(p *safejson.Parser, data any) ColliderDesc {
	shape := p.String(data, "shape", "unknown", safejson.Optional)
	return ColliderDesc{
		Shape:       ColliderShapes.Value(p.Log(), shape),
		Center:      vec2(p.Vec2(data, "center", [2]float64{})),
		HalfExtents: vec2(p.Vec2(data, "half_extents", [2]float64{})),
		Radius:      float32(p.Float(data, "radius", 0, safejson.Optional)),
	}
}

// WriteColliderDesc writes the shape tag and a shape-dependent payload.
// Unknown shapes write four zeros so the record size stays stable.
func WriteColliderDesc(w *serialize.Writer, c ColliderDesc) {
	w.U8(uint8(c.Shape))
	switch c.Shape {
	case ShapeCircle:
		w.F32(c.Center.X)
		w.F32(c.Center.Y)
		w.F32(c.Radius)
	case ShapeAABB:
		w.F32(c.Center.X)
		w.F32(c.Center.Y)
		w.F32(c.HalfExtents.X)
		w.F32(c.HalfExtents.Y)
	default:
		for i := 0; i < 4; i++ {
			w.F32(0)
		}
	}
}

const ColliderProfileVersion uint32 = 1

type ColliderTrack struct {
	Samples []ColliderDesc
}

/** @brief Hurt and hit tracks of one animation. */
type ColliderSet struct {
	Hurts []ColliderTrack
	Hits  []ColliderTrack
}

type ColliderProfile struct {
	RID     resources.ResourceID
	PerAnim []ColliderSet
}

func (c *ColliderProfile) TypeID() resources.TypeID { return resources.TypeIDColliderProfile }

func (c *ColliderProfile) Version() uint32 { return ColliderProfileVersion }

func (c *ColliderProfile) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(c.RID)
	w.Usize(len(c.PerAnim))
	for _, set := range c.PerAnim {
		writeTracks(w, set.Hurts)
		writeTracks(w, set.Hits)
	}
}

func writeTracks(w *serialize.Writer, tracks []ColliderTrack) {
	w.Usize(len(tracks))
	for _, t := range tracks {
		w.Usize(len(t.Samples))
		for _, s := range t.Samples {
			WriteColliderDesc(w, s)
		}
	}
}
