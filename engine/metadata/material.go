package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

const MaterialVersion uint32 = 1

/** @brief Surface properties used by movement and physics. */
type Material struct {
	RID           resources.ResourceID
	MoveScale     float32
	GroundDamping float32
	Friction      float32
	Restitution   float32
	AirDrag       float32
}

func (m *Material) TypeID() resources.TypeID { return resources.TypeIDMaterial }

func (m *Material) Version() uint32 { return MaterialVersion }

func (m *Material) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(m.RID)
	w.F32(m.MoveScale)
	w.F32(m.GroundDamping)
	w.F32(m.Friction)
	w.F32(m.Restitution)
	w.F32(m.AirDrag)
}
