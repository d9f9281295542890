package metadata

import (
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/** @brief Physics body parameters of a character. */
type PhysicsBodyDesc struct {
	Dynamic  bool
	InitVel  math.Vec2
	MaxVel   math.Vec2
	Acc      math.Vec2
	Dec      math.Vec2
	Collider ColliderDesc
}

func ParsePhysicsBodyDesc(p *safejson.Parser, data any) PhysicsBodyDesc {
	return PhysicsBodyDesc{
		Dynamic:  p.Bool(data, "dynamic", true, safejson.Optional),
		InitVel:  vec2(p.Vec2(data, "init_vel", [2]float64{0, 0})),
		MaxVel:   vec2(p.Vec2(data, "max_vel", [2]float64{100, 100})),
		Acc:      vec2(p.Vec2(data, "acc", [2]float64{60, 60})),
		Dec:      vec2(p.Vec2(data, "dec", [2]float64{50, 50})),
		Collider: ParseColliderDesc(p, p.Object(data, "collider", safejson.Optional)),
	}
}

func WritePhysicsBodyDesc(w *serialize.Writer, b PhysicsBodyDesc) {
	w.Bool(b.Dynamic)
	for _, v := range []math.Vec2{b.InitVel, b.MaxVel, b.Acc, b.Dec} {
		w.F32(v.X)
		w.F32(v.Y)
	}
	WriteColliderDesc(w, b.Collider)
}
