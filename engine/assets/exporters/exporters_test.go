package exporters

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spaghettifunk/rlres/engine/assets"
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/math"
	"github.com/spaghettifunk/rlres/engine/metadata"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/safejson"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

type indexed struct {
	typeName resources.TypeName
	name     string
	path     string
}

func buildIndex(t *testing.T, log *core.Logger, entries ...indexed) *resources.Index {
	t.Helper()
	b := resources.NewIndexBuilder(log)
	for _, e := range entries {
		if _, err := b.Add(e.typeName, e.name, e.path); err != nil {
			t.Fatalf("Add(%s, %s): %v", e.typeName, e.name, err)
		}
	}
	return b.ToIndex()
}

func writeSource(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readRes opens an exported resource and checks its header.
func readRes(t *testing.T, outDir string, e *resources.Entry) *serialize.Reader {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, e.Filename()))
	if err != nil {
		t.Fatalf("reading %s: %v", e.NID, err)
	}
	r := serialize.NewReader(bytes.NewReader(data))
	h, err := r.Header()
	if err != nil {
		t.Fatalf("header of %s: %v", e.NID, err)
	}
	if h.ResourceType != uint32(e.TypeID) {
		t.Fatalf("%s: resource type = %d, want %d", e.NID, h.ResourceType, e.TypeID)
	}
	if r.U32() != e.RID {
		t.Fatalf("%s: rid mismatch", e.NID)
	}
	return r
}

func mustGet(t *testing.T, idx *resources.Index, typeName resources.TypeName, name string) *resources.Entry {
	t.Helper()
	e, ok := idx.Get(typeName, name)
	if !ok {
		t.Fatalf("%s.%s not indexed", typeName, name)
	}
	return e
}

func TestAllRegistrationOrder(t *testing.T) {
	want := []string{"ability", "anim", "atlas", "chararch", "animcolprofile", "mat", "soundbank", "sound", "tex", "font"}
	all := All(core.Discard())
	if len(all) != len(want) {
		t.Fatalf("All() returned %d exporters, want %d", len(all), len(want))
	}
	for i, e := range all {
		if e.Name() != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, e.Name(), want[i])
		}
	}

	ordered, err := assets.SortExporters(all, core.Discard())
	if err != nil {
		t.Fatalf("SortExporters: %v", err)
	}
	pos := map[string]int{}
	for i, e := range ordered {
		pos[e.Name()] = i
	}
	for _, dep := range [][2]string{{"tex", "anim"}, {"tex", "atlas"}, {"tex", "font"}, {"sound", "soundbank"}, {"anim", "animcolprofile"}, {"ability", "chararch"}, {"soundbank", "chararch"}} {
		if pos[dep[0]] > pos[dep[1]] {
			t.Errorf("%s sorted after %s", dep[0], dep[1])
		}
	}
}

func TestRIDFromKey(t *testing.T) {
	log := core.Discard()
	idx := buildIndex(t, log, indexed{resources.TypeTexture, "hero", "hero.png"})
	p := safejson.NewParser(log)

	data := safejson.Object{"texture": "hero", "empty": ""}
	if got := RIDFromKey(p, idx, data, resources.TypeTexture, "texture", false); got != resources.ComputeRID("tex.hero") {
		t.Fatalf("RIDFromKey = %d, want rid of tex.hero", got)
	}

	before := log.Warnings()
	if got := RIDFromKey(p, idx, data, resources.TypeTexture, "empty", false); got != resources.InvalidResourceID {
		t.Fatalf("empty name resolved to %d", got)
	}
	if log.Warnings() != before+1 {
		t.Fatalf("empty name should warn once, got %d warnings", log.Warnings()-before)
	}

	before = log.Warnings()
	if got := RIDFromKey(p, idx, data, resources.TypeTexture, "missing", true); got != resources.InvalidResourceID {
		t.Fatalf("missing key resolved to %d", got)
	}
	if log.Warnings() != before {
		t.Fatal("silent lookup should not warn")
	}
}

func TestMaterialDefaults(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "mat", "stone.json"), `{"friction": 0.5}`)
	idx := buildIndex(t, log, indexed{resources.TypeMaterial, "stone", src})
	e := mustGet(t, idx, resources.TypeMaterial, "stone")
	out := t.TempDir()

	if err := NewMaterialExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	got := []float32{r.F32(), r.F32(), r.F32(), r.F32(), r.F32()}
	want := []float32{1, 0, 0.5, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("material fields = %v, want %v", got, want)
		}
	}
	if log.Warnings() != 4 {
		t.Fatalf("Warnings() = %d, want one per missing field", log.Warnings())
	}
}

func TestEmptyDocumentFails(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "mat", "void.json"), `{}`)
	idx := buildIndex(t, log, indexed{resources.TypeMaterial, "void", src})
	e := mustGet(t, idx, resources.TypeMaterial, "void")

	if err := NewMaterialExporter(log).BuildOne(e, "", t.TempDir(), idx); err == nil {
		t.Fatal("expected an error for an empty document")
	}
}

func TestAtlasSkipsInvalidSprites(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "atlas", "ui.json"), `{
		"texture": "ui",
		"sprites": [
			{"name": "button", "rect": [1, 2, 3, 4], "source_size": [3, 4], "offset": [0.5, 1], "offset_flipped": [0.5, 1]},
			{"name": "", "rect": [0, 0, 1, 1], "source_size": [1, 1], "offset": [0, 0], "offset_flipped": [0, 0]},
			{"name": "bad", "rect": [0, 0, 1], "source_size": [1, 1], "offset": [0, 0], "offset_flipped": [0, 0]},
			"not a sprite"
		]
	}`)
	idx := buildIndex(t, log,
		indexed{resources.TypeTexture, "ui", "ui.png"},
		indexed{resources.TypeAtlas, "ui", src})
	e := mustGet(t, idx, resources.TypeAtlas, "ui")
	out := t.TempDir()

	if err := NewAtlasExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if tex := r.U32(); tex != resources.ComputeRID("tex.ui") {
		t.Fatalf("texture rid = %d", tex)
	}
	if n := r.VectorLen(); n != 1 {
		t.Fatalf("sprite count = %d, want 1", n)
	}
	if name := r.String(); name != "button" {
		t.Fatalf("sprite name = %q", name)
	}
	if x, y, w, h := r.I32(), r.I32(), r.I32(), r.I32(); x != 1 || y != 2 || w != 3 || h != 4 {
		t.Fatalf("rect = (%d,%d,%d,%d)", x, y, w, h)
	}
	if off := math.NewVec2(r.F32(), r.F32()); off != math.NewVec2(0.5, 1) {
		t.Fatalf("offset = %+v", off)
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestAnimSetExport(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "animset", "hero.json"), `{
		"texture": "hero",
		"collider_profile": null,
		"default_anim": "hurt",
		"animations": [
			{
				"name": "walk_front", "anim_tag": "walk", "dir": "front", "flags": ["loop"],
				"frames": [
					{"rect": [0, 0, 8, 8], "source_size": [8, 8], "offset": [0.5, 1], "offset_flipped": [0.5, 1], "duration": 0.125},
					{"rect": [8, 0, 8, 8], "source_size": [8, 8], "offset": [0.5, 1], "offset_flipped": [0.5, 1], "duration": 0.25}
				],
				"events": [{"name": "hit_walk", "frame": 1, "params": [true, 2.0]}]
			},
			{"name": "broken", "anim_tag": "hurt", "frames": []}
		],
		"solved": [
			{"from": {"anim_tag": "walk", "dir": "left"}, "to": {"anim_tag": "walk", "dir": "right"}, "flip_policy": "flip"},
			{"from": {"anim_tag": "walk"}, "to": {"anim_tag": "walk", "dir": "right"}}
		]
	}`)
	idx := buildIndex(t, log,
		indexed{resources.TypeTexture, "hero", "hero.png"},
		indexed{resources.TypeAnimSet, "hero", src})
	e := mustGet(t, idx, resources.TypeAnimSet, "hero")
	out := t.TempDir()

	if err := NewAnimExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if tex := r.U32(); tex != resources.ComputeRID("tex.hero") {
		t.Fatalf("texture rid = %d", tex)
	}
	if cp := r.U32(); cp != resources.InvalidResourceID {
		t.Fatalf("null collider profile resolved to %d", cp)
	}
	if def := r.Usize(); def != 1 {
		t.Fatalf("default anim index = %d, want 1 (matched by anim_tag)", def)
	}
	if n := r.VectorLen(); n != 2 {
		t.Fatalf("anim count = %d, want 2", n)
	}

	// walk_front
	if flags := r.U32(); flags != uint32(metadata.AnimFlagLoop) {
		t.Fatalf("flags = %d", flags)
	}
	if d := r.F32(); d != 0.375 {
		t.Fatalf("duration = %v, want 0.375", d)
	}
	if key := metadata.AnimKey(r.U64()); key != metadata.MakeAnimKey(metadata.AnimWalk, metadata.DirFront) {
		t.Fatalf("key = %#x", key)
	}
	if n := r.VectorLen(); n != 2 {
		t.Fatalf("sample count = %d", n)
	}
	for i := 0; i < 2; i++ {
		r.Bytes(40)
		r.F32()
	}
	if n := r.VectorLen(); n != 2 {
		t.Fatalf("acc duration count = %d", n)
	}
	if a, b := r.F32(), r.F32(); a != 0.125 || b != 0.375 {
		t.Fatalf("acc durations = (%v, %v)", a, b)
	}
	if n := r.VectorLen(); n != 1 {
		t.Fatalf("key count = %d", n)
	}
	if tag, frame := r.U32(), r.U32(); tag != uint32(metadata.KeyTagHitWalk) || frame != 1 {
		t.Fatalf("key = (%d, %d)", tag, frame)
	}
	if p0, p1, p2 := r.U64(), r.U64(), r.U64(); p0 != 1 || p1 != uint64(serialize.F32Bits(2)) || p2 != 0 {
		t.Fatalf("params = (%d, %#x, %d)", p0, p1, p2)
	}

	// broken: no dir, so the key is invalid and the anim is empty.
	r.U32()
	if d := r.F32(); d != 0 {
		t.Fatalf("empty anim duration = %v", d)
	}
	if key := metadata.AnimKey(r.U64()); key != metadata.InvalidAnimKey {
		t.Fatalf("key without dir = %#x, want invalid", key)
	}
	if a, b, c := r.VectorLen(), r.VectorLen(), r.VectorLen(); a+b+c != 0 {
		t.Fatal("empty anim should have no samples, durations or keys")
	}

	if n := r.VectorLen(); n != 1 {
		t.Fatalf("solved count = %d, want 1", n)
	}
	from, to, policy := r.U64(), r.U64(), r.U8()
	if metadata.AnimKey(from) != metadata.MakeAnimKey(metadata.AnimWalk, metadata.DirLeft) ||
		metadata.AnimKey(to) != metadata.MakeAnimKey(metadata.AnimWalk, metadata.DirRight) ||
		metadata.FlipPolicy(policy) != metadata.FlipFlip {
		t.Fatalf("solved = (%#x, %#x, %d)", from, to, policy)
	}
	if r.Err() != nil {
		t.Fatal(r.Err())
	}
}

func TestAnimEventUnsupportedParamFails(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "animset", "bad.json"), `{
		"texture": "hero",
		"animations": [{"anim_tag": "idle", "dir": "front", "events": [{"name": "hit_walk", "frame": 0, "params": [[1, 2]]}]}]
	}`)
	idx := buildIndex(t, log, indexed{resources.TypeAnimSet, "bad", src})
	e := mustGet(t, idx, resources.TypeAnimSet, "bad")
	out := t.TempDir()

	if err := NewAnimExporter(log).BuildOne(e, "", out, idx); err == nil {
		t.Fatal("expected the list param to fail the anim set")
	}
	if _, err := os.Stat(filepath.Join(out, e.Filename())); !os.IsNotExist(err) {
		t.Fatal("a failed anim set should not be written")
	}
}

func TestAbilityPrograms(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "ability", "slash.yaml"), `
cost:
  stamina: 10
flags: [lock_movement]
onBegin:
  - op: play_anim
    params: ["anim.attack0"]
  - op: teleport
  - op: sleep
    params: [0.5]
onEnd:
  - op: end
`)
	idx := buildIndex(t, log, indexed{resources.TypeAbility, "slash", src})
	e := mustGet(t, idx, resources.TypeAbility, "slash")
	out := t.TempDir()

	if err := NewAbilityExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if stamina, mana := r.F32(), r.F32(); stamina != 10 || mana != 0 {
		t.Fatalf("cost = (%v, %v)", stamina, mana)
	}
	if flags := r.U32(); flags != uint32(metadata.AbilityFlagLockMovement) {
		t.Fatalf("flags = %d", flags)
	}

	if n := r.U64(); n != 2 {
		t.Fatalf("onBegin has %d instructions, want 2 (unknown op skipped)", n)
	}
	if op := r.U32(); op != uint32(metadata.OpPlayAnim) {
		t.Fatalf("first op = %d", op)
	}
	if anim := r.U64(); anim != uint64(metadata.AnimAttack0) {
		t.Fatalf("anim param = %d", anim)
	}
	r.Bytes(4 * 8)
	if op := r.U32(); op != uint32(metadata.OpSleep) {
		t.Fatalf("second op = %d", op)
	}
	if secs := r.U64(); secs != uint64(serialize.F32Bits(0.5)) {
		t.Fatalf("sleep param = %#x", secs)
	}
	r.Bytes(4 * 8)

	if n := r.U64(); n != 0 {
		t.Fatalf("onTick has %d instructions", n)
	}
	if n := r.U64(); n != 1 {
		t.Fatalf("onEnd has %d instructions", n)
	}
	if op := r.U32(); op != uint32(metadata.OpEnd) {
		t.Fatalf("onEnd op = %d", op)
	}
	if log.Warnings() == 0 {
		t.Fatal("unknown op should warn")
	}
}

func TestSoundBankUnknownSound(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "soundbank", "hero.json"),
		`{"sounds": ["sound.step", "sound.ghost", 7]}`)
	idx := buildIndex(t, log,
		indexed{resources.TypeSound, "step", "step.wav"},
		indexed{resources.TypeSoundBank, "hero", src})
	e := mustGet(t, idx, resources.TypeSoundBank, "hero")
	out := t.TempDir()

	if err := NewSoundBankExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if n := r.U64(); n != 1 {
		t.Fatalf("bank has %d sounds, want 1", n)
	}
	if rid := r.U32(); rid != resources.ComputeRID("sound.step") {
		t.Fatalf("sound rid = %d", rid)
	}
	if log.Errors() != 1 {
		t.Fatalf("Errors() = %d, want 1 for the unknown sound", log.Errors())
	}
}

func TestCharArchetypeReferences(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "chararch", "knight.json"), `{
		"type": "class",
		"anim_set": "animset.hero",
		"sound_bank": null,
		"abilities": ["ability.slash", 3]
	}`)
	idx := buildIndex(t, log,
		indexed{resources.TypeAnimSet, "hero", "hero.json"},
		indexed{resources.TypeAbility, "slash", "slash.json"},
		indexed{resources.TypeCharArchetype, "knight", src})
	e := mustGet(t, idx, resources.TypeCharArchetype, "knight")
	out := t.TempDir()

	if err := NewCharArchetypeExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if typ, faction, flags, class := r.U32(), r.U32(), r.U32(), r.U16(); metadata.CharType(typ) != metadata.CharTypeClass ||
		metadata.CharFaction(faction) != metadata.FactionNeutral || flags != 0 || class != 0 {
		t.Fatalf("header fields = (%d, %d, %d, %d)", typ, faction, flags, class)
	}
	if n := r.U8(); n != 1 {
		t.Fatalf("ability count = %d, want 1 (non-string entry skipped)", n)
	}
	if rid := r.U32(); rid != resources.ComputeRID("ability.slash") {
		t.Fatalf("ability slot 0 = %d", rid)
	}
	for i := 1; i < metadata.MaxAbilitySlotCount; i++ {
		if rid := r.U32(); rid != resources.InvalidResourceID {
			t.Fatalf("ability slot %d = %d, want invalid", i, rid)
		}
	}
}

func TestTextureToRGBA8(t *testing.T) {
	log := core.Discard()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 128, B: 64, A: 128})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	src := writeSource(t, filepath.Join(t.TempDir(), "tex", "dot.png"), buf.String())
	idx := buildIndex(t, log, indexed{resources.TypeTexture, "dot", src})
	e := mustGet(t, idx, resources.TypeTexture, "dot")
	out := t.TempDir()

	if err := NewTextureExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if f := r.U8(); metadata.TexFormat(f) != metadata.TexFormatRGBA8 {
		t.Fatalf("format = %d", f)
	}
	if w, h := r.U16(), r.U16(); w != 2 || h != 1 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if n := r.U64(); n != 8 {
		t.Fatalf("data length = %d, want 8", n)
	}
	want := []byte{255, 0, 0, 255, 0, 128, 64, 128}
	if got := r.Bytes(8); !bytes.Equal(got, want) {
		t.Fatalf("pixels = %v, want %v", got, want)
	}
}

func TestTextureRejectsGarbage(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "tex", "junk.png"), "not an image")
	idx := buildIndex(t, log, indexed{resources.TypeTexture, "junk", src})
	e := mustGet(t, idx, resources.TypeTexture, "junk")

	if err := NewTextureExporter(log).BuildOne(e, "", t.TempDir(), idx); err == nil {
		t.Fatal("expected a decode error")
	}
}

// pngHeader returns the signature and IHDR chunk of an RGBA8 PNG. Decoding
// stops there, which is enough for image.DecodeConfig.
func pngHeader(w, h uint32) []byte {
	var b bytes.Buffer
	b.WriteString("\x89PNG\r\n\x1a\n")
	chunk := []byte("IHDR")
	chunk = binary.BigEndian.AppendUint32(chunk, w)
	chunk = binary.BigEndian.AppendUint32(chunk, h)
	chunk = append(chunk, 8, 6, 0, 0, 0)
	binary.Write(&b, binary.BigEndian, uint32(len(chunk)-4))
	b.Write(chunk)
	binary.Write(&b, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return b.Bytes()
}

func TestTextureRejectsOversizedBeforeDecoding(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "tex", "wide.png"), string(pngHeader(70000, 1)))
	idx := buildIndex(t, log, indexed{resources.TypeTexture, "wide", src})
	e := mustGet(t, idx, resources.TypeTexture, "wide")

	err := NewTextureExporter(log).BuildOne(e, "", t.TempDir(), idx)
	if !errors.Is(err, core.ErrUnsupportedMedia) || !strings.Contains(err.Error(), "70000x1") {
		t.Fatalf("err = %v, want a size rejection", err)
	}
}

// pcm16WAV builds a canonical 44-byte-header PCM file.
func pcm16WAV(rate, channels int, samples []int16) []byte {
	var b bytes.Buffer
	dataLen := len(samples) * 2
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVEfmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))
	binary.Write(&b, binary.LittleEndian, uint16(channels))
	binary.Write(&b, binary.LittleEndian, uint32(rate))
	binary.Write(&b, binary.LittleEndian, uint32(rate*channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(channels*2))
	binary.Write(&b, binary.LittleEndian, uint16(16))
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	binary.Write(&b, binary.LittleEndian, samples)
	return b.Bytes()
}

func TestSoundWAV(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "sound", "blip.wav"),
		string(pcm16WAV(8000, 1, []int16{0, 16384, -16384, -32768})))
	idx := buildIndex(t, log, indexed{resources.TypeSound, "blip", src})
	e := mustGet(t, idx, resources.TypeSound, "blip")
	out := t.TempDir()

	if err := NewSoundExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if rate, ch := r.U32(), r.U32(); rate != 8000 || ch != 1 {
		t.Fatalf("format = %d Hz x %d", rate, ch)
	}
	if n := r.U64(); n != 4 {
		t.Fatalf("sample count = %d", n)
	}
	want := []float32{0, 0.5, -0.5, -1}
	for i, w := range want {
		if got := r.F32(); got != w {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}
}

func TestSoundUnsupportedExtension(t *testing.T) {
	_, err := decodeSound("voice.aiff")
	if err == nil {
		t.Fatal("expected an unsupported media error")
	}
}

const testFont = `info face="Pixel" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=0 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=18 base=14 scaleW=64 scaleH=32 pages=1 packed=0 alphaChnl=0 redChnl=4 greenChnl=4 blueChnl=4
page id=0 file="pixel_0.png"
chars count=2
char id=66 x=9 y=0 width=7 height=10 xoffset=0 yoffset=4 xadvance=8 page=0 chnl=15
char id=65 x=0 y=0 width=8 height=10 xoffset=0 yoffset=4 xadvance=9 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-1
`

func TestFontDescriptor(t *testing.T) {
	log := core.Discard()
	src := writeSource(t, filepath.Join(t.TempDir(), "font", "pixel.fnt"), testFont)
	idx := buildIndex(t, log,
		indexed{resources.TypeTexture, "pixel_0", "pixel_0.png"},
		indexed{resources.TypeFont, "pixel", src})
	e := mustGet(t, idx, resources.TypeFont, "pixel")
	out := t.TempDir()

	if err := NewFontExporter(log).BuildOne(e, "", out, idx); err != nil {
		t.Fatalf("BuildOne: %v", err)
	}
	r := readRes(t, out, e)
	if face := r.String(); face != "Pixel" {
		t.Fatalf("face = %q", face)
	}
	if size, lh, base, sw, sh := r.I32(), r.I32(), r.I32(), r.I32(), r.I32(); size != 16 || lh != 18 || base != 14 || sw != 64 || sh != 32 {
		t.Fatalf("metrics = %d %d %d %d %d", size, lh, base, sw, sh)
	}
	if n := r.VectorLen(); n != 1 {
		t.Fatalf("page count = %d", n)
	}
	if rid := r.U32(); rid != resources.ComputeRID("tex.pixel_0") {
		t.Fatalf("page rid = %d", rid)
	}
	if n := r.VectorLen(); n != 2 {
		t.Fatalf("glyph count = %d", n)
	}
	if cp := r.U32(); cp != 'A' {
		t.Fatalf("first glyph = %d, want sorted by codepoint", cp)
	}
	r.Bytes(7*4 + 1)
	if cp := r.U32(); cp != 'B' {
		t.Fatalf("second glyph = %d", cp)
	}
	r.Bytes(7*4 + 1)
	if n := r.VectorLen(); n != 1 {
		t.Fatalf("kerning count = %d", n)
	}
	if first, second, amount := r.U32(), r.U32(), r.I16(); first != 'A' || second != 'B' || amount != -1 {
		t.Fatalf("kerning = (%d, %d, %d)", first, second, amount)
	}
	if log.Warnings() != 0 {
		t.Fatalf("page texture should resolve without warnings, got %d", log.Warnings())
	}
}

func TestExportersEndToEnd(t *testing.T) {
	log := core.Discard()
	src := t.TempDir()
	out := t.TempDir()

	var pixels bytes.Buffer
	if err := encodeSolid(&pixels, 4, 4); err != nil {
		t.Fatal(err)
	}
	writeSource(t, filepath.Join(src, "tex", "hero.png"), pixels.String())
	writeSource(t, filepath.Join(src, "atlas", "hero.json"), `{"texture": "hero", "sprites": []}`)
	writeSource(t, filepath.Join(src, "mat", "ice.yml"), "move_scale: 1\nground_damping: 0\nfriction: 0.01\nrestitution: 0\nair_drag: 0\n")

	pipeline := assets.NewPipeline(log, assets.Options{SrcRoot: src, OutRoot: out})
	pipeline.RegisterExporter(All(log)...)
	report, err := pipeline.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Resources != 3 || report.Exported != 3 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	for _, nid := range []string{"tex.hero", "atlas.hero", "mat.ice"} {
		typeName, _, _ := core.ParseNID(nid)
		path := filepath.Join(out, typeName, core.ResFilename(resources.ComputeRID(nid)))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not exported: %v", nid, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, assets.DefaultIndexBin)); err != nil {
		t.Fatalf("binary index missing: %v", err)
	}
}

func encodeSolid(buf *bytes.Buffer, w, h int) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return png.Encode(buf, img)
}
