package metadata

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

func TestAnimKey(t *testing.T) {
	k := MakeAnimKey(AnimAttack1, DirLeft)
	if uint64(k) != 8<<32|2 {
		t.Fatalf("MakeAnimKey = %#x", uint64(k))
	}
	id, dir := SplitAnimKey(k)
	if id != AnimAttack1 || dir != DirLeft {
		t.Fatalf("SplitAnimKey = (%d, %d)", id, dir)
	}
	if uint64(InvalidAnimKey) != ^uint64(0) {
		t.Fatal("InvalidAnimKey must be all ones")
	}
}

func TestEnumTablesFallBack(t *testing.T) {
	log := core.Discard()
	if got := AnimIDs.Value(log, "WALK"); got != AnimWalk {
		t.Fatalf("AnimIDs(WALK) = %d", got)
	}
	if got := AnimIDs.Value(log, "moonwalk"); got != AnimInvalid {
		t.Fatalf("AnimIDs(moonwalk) = %d", got)
	}
	if got := CardinalDirs.Value(log, "sideways"); got != DirUnset {
		t.Fatalf("CardinalDirs(sideways) = %d", got)
	}
	if got := AbilityOps.Value(log, "teleport"); got != OpNoOp {
		t.Fatalf("AbilityOps(teleport) = %d", got)
	}
	if got := AbilityOps.Value(log, "spawn_sticky_hitbox"); got != OpSpawnStickyHitbox {
		t.Fatalf("AbilityOps(spawn_sticky_hitbox) = %d", got)
	}
	if log.Warnings() != 3 {
		t.Fatalf("warnings = %d, want 3", log.Warnings())
	}
}

func newParamIndex(t *testing.T, log *core.Logger) *resources.Index {
	t.Helper()
	b := resources.NewIndexBuilder(log)
	if _, err := b.Add(resources.TypeSound, "swing", "swing.wav"); err != nil {
		t.Fatal(err)
	}
	return b.ToIndex()
}

func TestEncodeParamSet(t *testing.T) {
	log := core.Discard()
	idx := newParamIndex(t, log)

	v, err := safejson.Decode([]byte(`[true, false, 1.5, 2, "sound.swing", "anim.dash", "sound.nope"]`), false)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := safejson.AsList(v)
	got, err := EncodeParamSet(raw, idx, log)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint64{
		1,
		0,
		uint64(serialize.F32Bits(1.5)),
		uint64(serialize.F32Bits(2)),
		uint64(resources.ComputeRID("sound.swing")),
		uint64(AnimDash),
		uint64(resources.InvalidResourceID),
	}
	if len(got) != len(want) {
		t.Fatalf("got %d params, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param %d = %#x, want %#x", i, got[i], want[i])
		}
	}
	// Only the unresolved sound reference warns.
	if log.Warnings() != 1 {
		t.Fatalf("warnings = %d, want 1", log.Warnings())
	}
}

func TestEncodeParamSetFailures(t *testing.T) {
	log := core.Discard()
	idx := newParamIndex(t, log)

	if _, err := EncodeParamSet([]any{"nodot"}, idx, log); !errors.Is(err, core.ErrMalformedNID) {
		t.Fatalf("malformed nid err = %v", err)
	}
	if _, err := EncodeParamSet([]any{map[string]any{}}, idx, log); !errors.Is(err, core.ErrUnsupportedParam) {
		t.Fatalf("object param err = %v", err)
	}
}

func TestWriteParamSetPadsAndTruncates(t *testing.T) {
	log := core.Discard()
	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	WriteParamSet(w, log, []uint64{7}, MaxAnimKeyParamCount)
	WriteParamSet(w, log, []uint64{1, 2, 3, 4}, MaxAnimKeyParamCount)
	if buf.Len() != 2*MaxAnimKeyParamCount*8 {
		t.Fatalf("wrote %d bytes", buf.Len())
	}
	r := serialize.NewReader(&buf)
	for i, want := range []uint64{7, 0, 0, 1, 2, 3} {
		if got := r.U64(); got != want {
			t.Fatalf("slot %d = %d, want %d", i, got, want)
		}
	}
	if log.Warnings() != 1 {
		t.Fatalf("warnings = %d, want 1", log.Warnings())
	}
}

func TestColliderDescRoundTrip(t *testing.T) {
	log := core.Discard()
	p := safejson.NewParser(log)

	v, _ := safejson.Decode([]byte(`{"shape": "AABB", "center": [1, -2], "half_extents": [3, 4]}`), false)
	c := ParseColliderDesc(p, v)
	if c.Shape != ShapeAABB || c.Center != math.NewVec2(1, -2) || c.HalfExtents != math.NewVec2(3, 4) {
		t.Fatalf("parsed %+v", c)
	}

	var buf bytes.Buffer
	w := serialize.NewWriter(&buf)
	WriteColliderDesc(w, c)
	WriteColliderDesc(w, ColliderDesc{Shape: ShapeCircle, Radius: 5})
	WriteColliderDesc(w, ColliderDesc{})
	if buf.Len() != 17+13+17 {
		t.Fatalf("collider bytes = %d", buf.Len())
	}

	r := serialize.NewReader(&buf)
	if r.U8() != uint8(ShapeAABB) || r.F32() != 1 || r.F32() != -2 || r.F32() != 3 || r.F32() != 4 {
		t.Fatal("aabb payload mismatch")
	}
	if r.U8() != uint8(ShapeCircle) || r.F32() != 0 || r.F32() != 0 || r.F32() != 5 {
		t.Fatal("circle payload mismatch")
	}
}

func TestCharArchetypeLayout(t *testing.T) {
	arch := &CharArchetype{
		RID:       42,
		Type:      CharTypeClass,
		Faction:   FactionEvil,
		ClassID:   uint16(CharClassSwordsman),
		Abilities: []resources.ResourceID{10, 11},
		Physics: PhysicsBodyDesc{
			Dynamic: true,
			MaxVel:  math.NewVec2(100, 100),
		},
		AnimSet:   7,
		StartAnim: AnimIdle,
		SoundBank: resources.InvalidResourceID,
	}
	var buf bytes.Buffer
	if err := Encode(&buf, arch, core.Discard()); err != nil {
		t.Fatal(err)
	}
	// header + ids/enums + class + slots + physics + trailing refs
	if want := 12 + 16 + 2 + 1 + 32 + (1 + 32 + 17) + 12; buf.Len() != want {
		t.Fatalf("archetype bytes = %d, want %d", buf.Len(), want)
	}

	r := serialize.NewReader(&buf)
	h, err := r.Header()
	if err != nil || h.ResourceType != uint32(resources.TypeIDCharArchetype) || h.Version != 1 {
		t.Fatalf("header = %+v, %v", h, err)
	}
	if r.U32() != 42 || r.U32() != uint32(CharTypeClass) || r.U32() != uint32(FactionEvil) || r.U32() != 0 {
		t.Fatal("prefix mismatch")
	}
	if r.U16() != 2 || r.U8() != 2 {
		t.Fatal("class id or slot count mismatch")
	}
	slots := []uint32{10, 11}
	for i := 0; i < MaxAbilitySlotCount; i++ {
		want := resources.InvalidResourceID
		if i < len(slots) {
			want = slots[i]
		}
		if got := r.U32(); got != want {
			t.Fatalf("slot %d = %d, want %d", i, got, want)
		}
	}
}

func TestAbilityParamsAreMasked(t *testing.T) {
	a := &Ability{
		RID: 1,
		OnBegin: AbilityProgram{Code: []AbilityInstruction{
			{Op: OpDamage, Params: []uint64{0x1_0000_0005, 1, 2, 3, 4, 5}},
		}},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, a, core.Discard()); err != nil {
		t.Fatal(err)
	}
	r := serialize.NewReader(&buf)
	if _, err := r.Header(); err != nil {
		t.Fatal(err)
	}
	r.U32()
	r.F32()
	r.F32()
	r.U32()
	if n := r.U64(); n != 1 {
		t.Fatalf("on_begin count = %d", n)
	}
	if op := r.U32(); op != uint32(OpDamage) {
		t.Fatalf("op = %d", op)
	}
	for i, want := range []uint64{5, 1, 2, 3, 4} {
		if got := r.U64(); got != want {
			t.Fatalf("param %d = %#x, want %#x", i, got, want)
		}
	}
	if r.U64() != 0 || r.U64() != 0 {
		t.Fatal("on_tick and on_end should be empty")
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}
