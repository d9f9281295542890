package metadata

import (
	"fmt"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

// internalEncoders resolve NIDs whose type is a small enumeration rather
// than an indexed resource.
var internalEncoders = map[string]func(log *core.Logger, name string) uint64{
	resources.SubTypeAnim: func(log *core.Logger, name string) uint64 {
		return uint64(AnimIDs.Value(log, name))
	},
}

func encodeNID(nid string, idx *resources.Index, log *core.Logger) (uint64, error) {
	typeName, name, err := core.ParseNID(nid)
	if err != nil {
		log.Error("Failed to parse NID %q: %s", nid, err)
		return 0, err
	}
	if enc, ok := internalEncoders[typeName]; ok {
		return enc(log, name), nil
	}
	return uint64(idx.GetRID(resources.TypeName(typeName), name)), nil
}

// EncodeParam turns one raw document value into a parameter slot.
// Booleans become 0/1, numbers their f32 bit pattern, "type.name" strings
// a resolved id.
func EncodeParam(raw any, idx *resources.Index, log *core.Logger) (uint64, error) {
	if b, ok := safejson.AsBool(raw); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	if f, ok := safejson.AsFloat(raw); ok {
		return uint64(serialize.F32Bits(f)), nil
	}
	if s, ok := safejson.AsString(raw); ok {
		return encodeNID(s, idx, log)
	}
	log.Warn("Unsupported param value of type %s: %v", safejson.TypeName(raw), raw)
	return 0, fmt.Errorf("%w: %v", core.ErrUnsupportedParam, raw)
}

// EncodeParamSet encodes every value. The first failure aborts the set.
func EncodeParamSet(raw []any, idx *resources.Index, log *core.Logger) ([]uint64, error) {
	encoded := make([]uint64, 0, len(raw))
	for _, v := range raw {
		p, err := EncodeParam(v, idx, log)
		if err != nil {
			log.Error("Failed to encode param value %v: %s", v, err)
			return nil, err
		}
		encoded = append(encoded, p)
	}
	return encoded, nil
}

// WriteParamSet writes exactly maxCount u64 slots, truncating with a warning
// or padding with zeros.
func WriteParamSet(w *serialize.Writer, log *core.Logger, params []uint64, maxCount int) {
	if len(params) > maxCount {
		log.Warn("ParamSet received %d params but max_count is %d; truncating extras", len(params), maxCount)
		params = params[:maxCount]
	}
	for _, p := range params {
		w.U64(p)
	}
	for i := len(params); i < maxCount; i++ {
		w.U64(0)
	}
}
