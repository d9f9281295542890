package exporters

import (
	"fmt"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

type AbilityExporter struct {
	base
}

func NewAbilityExporter(log *core.Logger) *AbilityExporter {
	return &AbilityExporter{newBase(log, "ability",
		[]resources.TypeName{resources.TypeAbility},
		nil,
		assets.JSONPatterns)}
}

func (x *AbilityExporter) BuildOne(e *resources.Entry, _ string, outDir string, idx *resources.Index) error {
	data, err := x.loadDocument(e, "ability")
	if err != nil {
		return err
	}

	cost := x.p.Object(data, "cost", safejson.Optional)
	ability := &metadata.Ability{
		RID:     e.RID,
		Stamina: float32(x.p.Float(cost, "stamina", 0, safejson.Optional)),
		Mana:    float32(x.p.Float(cost, "mana", 0, safejson.Optional)),
		Flags:   x.p.Flags(data, "flags", flagNames(x.log, metadata.AbilityFlags.Value), 0),
	}

	programs := []struct {
		key string
		dst *metadata.AbilityProgram
	}{
		{"onBegin", &ability.OnBegin},
		{"onTick", &ability.OnTick},
		{"onEnd", &ability.OnEnd},
	}
	for _, prog := range programs {
		code, err := x.program(e, data, prog.key, idx)
		if err != nil {
			return err
		}
		prog.dst.Code = code
	}

	return x.write(outDir, e, ability)
}

func (x *AbilityExporter) program(e *resources.Entry, data safejson.Object, key string, idx *resources.Index) ([]metadata.AbilityInstruction, error) {
	var code []metadata.AbilityInstruction
	for _, item := range x.p.List(data, key, nil, safejson.Optional) {
		obj, ok := safejson.AsObject(item)
		if !ok {
			x.log.Warn("%s: ability %q program %s has non-mapping instruction; skipping. Raw=%v", x.name, e.Name, key, item)
			continue
		}
		opName := x.p.String(obj, "op", "")
		if opName == "" {
			x.log.Warn("%s: ability %q program %s missing 'op'; skipping. Raw=%v", x.name, e.Name, key, obj)
			continue
		}
		op, ok := metadata.AbilityOps.Lookup(opName)
		if !ok {
			x.log.Warn("%s: ability %q program %s unknown op %q; skipping.", x.name, e.Name, key, opName)
			continue
		}
		params, err := metadata.EncodeParamSet(x.p.List(obj, "params", nil, safejson.Optional), idx, x.log)
		if err != nil {
			return nil, fmt.Errorf("ability %s program %s op %s: %w", e.NID, key, opName, err)
		}
		code = append(code, metadata.AbilityInstruction{Op: op, Params: params})
	}
	return code, nil
}
