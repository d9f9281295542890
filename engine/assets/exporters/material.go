package exporters

import (
	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
)

type MaterialExporter struct {
	base
}

func NewMaterialExporter(log *core.Logger) *MaterialExporter {
	return &MaterialExporter{newBase(log, "mat",
		[]resources.TypeName{resources.TypeMaterial},
		nil,
		assets.JSONPatterns)}
}

func (x *MaterialExporter) BuildOne(e *resources.Entry, _ string, outDir string, _ *resources.Index) error {
	data, err := x.loadDocument(e, "material")
	if err != nil {
		return err
	}
	return x.write(outDir, e, &metadata.Material{
		RID:           e.RID,
		MoveScale:     float32(x.p.Float(data, "move_scale", 1.0)),
		GroundDamping: float32(x.p.Float(data, "ground_damping", 0)),
		Friction:      float32(x.p.Float(data, "friction", 0.1)),
		Restitution:   float32(x.p.Float(data, "restitution", 0)),
		AirDrag:       float32(x.p.Float(data, "air_drag", 0)),
	})
}
