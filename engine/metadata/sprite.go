package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/**
 * @brief Sprite geometry inside a texture. Offsets are normalized render
 * offsets derived from the pivot.
 */
type Sprite struct {
	/** @brief Trimmed rectangle in the texture. */
	Rect math.Rect
	/** @brief Normalized render offset. */
	Offset math.Vec2
	/** @brief Offset used when the sprite is mirrored horizontally. */
	OffsetFlipped math.Vec2
	/** @brief Untrimmed source size. */
	SourceSize math.Size
}

func WriteSprite(w *serialize.Writer, s Sprite) {
	w.I32(int32(s.Rect.X))
	w.I32(int32(s.Rect.Y))
	w.I32(int32(s.Rect.W))
	w.I32(int32(s.Rect.H))
	w.F32(s.Offset.X)
	w.F32(s.Offset.Y)
	w.F32(s.OffsetFlipped.X)
	w.F32(s.OffsetFlipped.Y)
	w.I32(int32(s.SourceSize.W))
	w.I32(int32(s.SourceSize.H))
}

const AtlasVersion uint32 = 1

type AtlasSprite struct {
	Name   string
	Sprite Sprite
}

/** @brief A named collection of sprites sharing one texture. */
type Atlas struct {
	RID     resources.ResourceID
	Tex     resources.ResourceID
	Sprites []AtlasSprite
}

func (a *Atlas) TypeID() resources.TypeID { return resources.TypeIDAtlas }

func (a *Atlas) Version() uint32 { return AtlasVersion }

func (a *Atlas) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(a.RID)
	w.U32(a.Tex)
	w.VectorLen(len(a.Sprites))
	for _, s := range a.Sprites {
		w.String(s.Name)
		WriteSprite(w, s.Sprite)
	}
}
