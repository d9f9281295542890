package aseprite

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/safejson"
)

// PivotPreset names an anchor inside a sprite's source size.
type PivotPreset string

const (
	PivotTopLeft          PivotPreset = "top_left"
	PivotTopCenter        PivotPreset = "top_center"
	PivotTopRight         PivotPreset = "top_right"
	PivotCenterLeft       PivotPreset = "center_left"
	PivotCenter           PivotPreset = "center"
	PivotCenterRight      PivotPreset = "center_right"
	PivotBottomLeft       PivotPreset = "bottom_left"
	PivotBottomCenter     PivotPreset = "bottom_center"
	PivotBottomRight      PivotPreset = "bottom_right"
	PivotCustomPixels     PivotPreset = "custom_pixels"
	PivotCustomNormalized PivotPreset = "custom_normalized"
)

func validPreset(s string) bool {
	switch PivotPreset(s) {
	case PivotTopLeft, PivotTopCenter, PivotTopRight,
		PivotCenterLeft, PivotCenter, PivotCenterRight,
		PivotBottomLeft, PivotBottomCenter, PivotBottomRight,
		PivotCustomPixels, PivotCustomNormalized:
		return true
	}
	return false
}

// PivotDesc describes where a sprite's origin sits.
type PivotDesc struct {
	Preset PivotPreset
	Custom *math.Point
	Norm   *[2]float64
}

// DefaultPivot anchors sprites at their feet.
var DefaultPivot = PivotDesc{Preset: PivotBottomCenter}

// ResolvePivot turns a pivot description into pixels inside sourceSize.
func ResolvePivot(log *core.Logger, sourceSize math.Size, pd PivotDesc) math.Point {
	w, h := sourceSize.W, sourceSize.H
	switch pd.Preset {
	case PivotTopLeft:
		return math.Point{}
	case PivotTopCenter:
		return math.Point{X: math.FloorDiv(w, 2)}
	case PivotTopRight:
		return math.Point{X: w}
	case PivotCenterLeft:
		return math.Point{Y: math.FloorDiv(h, 2)}
	case PivotCenter:
		return math.Point{X: math.FloorDiv(w, 2), Y: math.FloorDiv(h, 2)}
	case PivotCenterRight:
		return math.Point{X: w, Y: math.FloorDiv(h, 2)}
	case PivotBottomLeft:
		return math.Point{Y: h}
	case PivotBottomCenter:
		return math.Point{X: math.FloorDiv(w, 2), Y: h}
	case PivotBottomRight:
		return math.Point{X: w, Y: h}
	case PivotCustomPixels:
		if pd.Custom == nil {
			log.Warn("PivotPreset preset %s used without custom pixels; defaulting to (0, 0)", PivotCustomPixels)
			return math.Point{}
		}
		return *pd.Custom
	case PivotCustomNormalized:
		if pd.Norm == nil {
			log.Warn("PivotPreset preset %s used without normalized coords; defaulting to (0, 0)", PivotCustomNormalized)
			return math.Point{}
		}
		nx := math.Clamp(pd.Norm[0], 0, 1)
		ny := math.Clamp(pd.Norm[1], 0, 1)
		return math.Point{X: math.Round(nx * float64(w)), Y: math.Round(ny * float64(h))}
	}
	log.Warn("Unknown PivotPreset value %q in resolve_pivot; defaulting to (0, 0)", pd.Preset)
	return math.Point{}
}

// OffsetPair is a normalized sprite offset and its horizontally flipped twin.
type OffsetPair struct {
	Offset  [2]float64
	Flipped [2]float64
}

// ResolveOffsets expresses the pivot as a normalized offset of the trimmed
// frame rectangle.
func ResolveOffsets(log *core.Logger, rect, sourceRect math.Rect, sourceSize math.Size, pd PivotDesc) OffsetPair {
	pv := ResolvePivot(log, sourceSize, pd)
	offX := float64(sourceRect.X - pv.X)
	offY := float64(sourceRect.Y - pv.Y)

	rw := float64(max(1, rect.W))
	rh := float64(max(1, rect.H))

	nx := math.Clamp(-offX/rw, 0, 1)
	ny := math.Clamp(1+offY/rh, 0, 1)
	return OffsetPair{
		Offset:  [2]float64{nx, ny},
		Flipped: [2]float64{1 - nx, 1 - ny},
	}
}

// PivotFromMeta reads the sheet-wide pivot from the companion meta
// document. A nil meta yields DefaultPivot.
func PivotFromMeta(p *safejson.Parser, meta safejson.Object) PivotDesc {
	if meta == nil {
		return DefaultPivot
	}
	raw := p.Object(meta, "pivot", safejson.Optional)
	if len(raw) == 0 {
		return DefaultPivot
	}
	preset := p.String(raw, "preset", "")
	if preset == "" {
		return DefaultPivot
	}
	if !validPreset(preset) {
		p.Log().Warn("Invalid pivot preset %q in meta; using default pivot", preset)
		return DefaultPivot
	}

	pd := PivotDesc{Preset: PivotPreset(preset)}
	cx, okx := p.LookupInt(raw, "x", safejson.Optional)
	cy, oky := p.LookupInt(raw, "y", safejson.Optional)
	if okx && oky {
		pd.Custom = &math.Point{X: cx, Y: cy}
	}
	nx, okx := p.LookupFloat(raw, "nx", safejson.Optional)
	ny, oky := p.LookupFloat(raw, "ny", safejson.Optional)
	if okx && oky {
		pd.Norm = &[2]float64{nx, ny}
	}
	return pd
}

// PivotFromLayer looks up the pivot layer frame matching an atlas frame and
// uses the center of its trimmed rectangle. It returns nil when the frame
// has no usable pivot marker.
func PivotFromLayer(p *safejson.Parser, filename string, pivots map[string]safejson.Object) *PivotDesc {
	key := ParseFrameName(filename).Suffix
	if key == "" {
		key = filename
	}
	raw, ok := pivots[key]
	if !ok {
		return nil
	}
	ss := p.Object(raw, "spriteSourceSize", safejson.Optional)
	if len(ss) == 0 {
		return nil
	}
	x, okx := p.LookupInt(ss, "x")
	y, oky := p.LookupInt(ss, "y")
	w, okw := p.LookupInt(ss, "w")
	h, okh := p.LookupInt(ss, "h")
	if !okx || !oky || !okw || !okh {
		return nil
	}
	cx, cy := math.Rect{X: x, Y: y, W: w, H: h}.Center()
	return &PivotDesc{
		Preset: PivotCustomPixels,
		Custom: &math.Point{X: math.Round(cx), Y: math.Round(cy)},
	}
}
