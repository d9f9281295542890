package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/enum"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/** @brief Gameplay animation identifier. */
type AnimID uint32

const (
	AnimIdle    AnimID = 0
	AnimWalk    AnimID = 1
	AnimRun     AnimID = 2
	AnimDash    AnimID = 3
	AnimHurt    AnimID = 4
	AnimHeal    AnimID = 5
	AnimDead    AnimID = 6
	AnimAttack0 AnimID = 7
	AnimAttack1 AnimID = 8
	AnimAttack2 AnimID = 9
	AnimInvalid AnimID = 0xFFFFFFFF
)

var AnimIDs = enum.New("AnimName",
	enum.Pair[AnimID]{Name: "invalid", Value: AnimInvalid},
	enum.Pair[AnimID]{Name: "idle", Value: AnimIdle},
	enum.Pair[AnimID]{Name: "walk", Value: AnimWalk},
	enum.Pair[AnimID]{Name: "run", Value: AnimRun},
	enum.Pair[AnimID]{Name: "dash", Value: AnimDash},
	enum.Pair[AnimID]{Name: "hurt", Value: AnimHurt},
	enum.Pair[AnimID]{Name: "heal", Value: AnimHeal},
	enum.Pair[AnimID]{Name: "dead", Value: AnimDead},
	enum.Pair[AnimID]{Name: "attack0", Value: AnimAttack0},
	enum.Pair[AnimID]{Name: "attack1", Value: AnimAttack1},
	enum.Pair[AnimID]{Name: "attack2", Value: AnimAttack2},
)

/** @brief Facing direction of an animation. */
type CardinalDir uint32

const (
	DirUnset CardinalDir = iota
	DirFront
	DirLeft
	DirRight
	DirBack
)

var CardinalDirs = enum.New("CardinalDirName",
	enum.Pair[CardinalDir]{Name: "unset", Value: DirUnset},
	enum.Pair[CardinalDir]{Name: "unset", Value: DirUnset},
	enum.Pair[CardinalDir]{Name: "front", Value: DirFront},
	enum.Pair[CardinalDir]{Name: "left", Value: DirLeft},
	enum.Pair[CardinalDir]{Name: "right", Value: DirRight},
	enum.Pair[CardinalDir]{Name: "back", Value: DirBack},
)

/** @brief Playback flags of an animation. */
type AnimFlag uint32

const (
	AnimFlagNone     AnimFlag = 0x0
	AnimFlagLoop     AnimFlag = 0x1
	AnimFlagPingPong AnimFlag = 0x2
)

var AnimFlags = enum.New("AnimFlagName",
	enum.Pair[AnimFlag]{Name: "none", Value: AnimFlagNone},
	enum.Pair[AnimFlag]{Name: "none", Value: AnimFlagNone},
	enum.Pair[AnimFlag]{Name: "loop", Value: AnimFlagLoop},
	enum.Pair[AnimFlag]{Name: "ping_pong", Value: AnimFlagPingPong},
)

/** @brief Event kind attached to an animation frame. */
type AnimKeyTag uint32

const (
	KeyTagUnknown           AnimKeyTag = 0
	KeyTagDefaultHurtboxSet AnimKeyTag = 1000
	KeyTagCustomHurtboxSet  AnimKeyTag = 1001
	KeyTagHitWalk           AnimKeyTag = 1002
)

var AnimKeyTags = enum.New("AnimKeyTagName",
	enum.Pair[AnimKeyTag]{Name: "unknown", Value: KeyTagUnknown},
	enum.Pair[AnimKeyTag]{Name: "default_hurtbox_set", Value: KeyTagDefaultHurtboxSet},
	enum.Pair[AnimKeyTag]{Name: "custom_hurtbox_set", Value: KeyTagCustomHurtboxSet},
	enum.Pair[AnimKeyTag]{Name: "hit_walk", Value: KeyTagHitWalk},
)

/** @brief How a solved transition reuses mirrored animation data. */
type FlipPolicy uint8

const (
	FlipUnknown FlipPolicy = iota
	FlipKeep
	FlipFlip
	FlipDontFlip
)

var FlipPolicies = enum.New("AnimFlipPolicyName",
	enum.Pair[FlipPolicy]{Name: "unknown", Value: FlipUnknown},
	enum.Pair[FlipPolicy]{Name: "unknown", Value: FlipUnknown},
	enum.Pair[FlipPolicy]{Name: "keep", Value: FlipKeep},
	enum.Pair[FlipPolicy]{Name: "flip", Value: FlipFlip},
	enum.Pair[FlipPolicy]{Name: "dont_flip", Value: FlipDontFlip},
)

// AnimKey packs an animation id and a direction: (id << 32) | dir.
type AnimKey uint64

const InvalidAnimKey AnimKey = 1<<64 - 1

func MakeAnimKey(id AnimID, dir CardinalDir) AnimKey {
	return AnimKey(uint64(id)<<32 | uint64(dir))
}

func SplitAnimKey(k AnimKey) (AnimID, CardinalDir) {
	return AnimID(uint64(k) >> 32), CardinalDir(uint64(k) & 0xFFFFFFFF)
}

const (
	AnimSetVersion uint32 = 1
	/** @brief Fixed number of parameter slots per key frame. */
	MaxAnimKeyParamCount = 3
)

type AnimSample struct {
	Sprite   Sprite
	Duration float32
}

type AnimKeyFrame struct {
	Tag    AnimKeyTag
	Frame  uint32
	Params []uint64
}

/**
 * @brief One animation: its frame samples, the running duration sum per
 * frame and keyed events.
 */
type Anim struct {
	Flags        AnimFlag
	Duration     float32
	Key          AnimKey
	Samples      []AnimSample
	AccDurations []float32
	Keys         []AnimKeyFrame
}

type AnimSolvedEntry struct {
	From   AnimKey
	To     AnimKey
	Policy FlipPolicy
}

type AnimSet struct {
	RID             resources.ResourceID
	Tex             resources.ResourceID
	ColliderProfile resources.ResourceID
	DefaultAnimIdx  int
	Anims           []Anim
	Solved          []AnimSolvedEntry
}

func (a *AnimSet) TypeID() resources.TypeID { return resources.TypeIDAnimSet }

func (a *AnimSet) Version() uint32 { return AnimSetVersion }

func (a *AnimSet) Serialize(w *serialize.Writer, log *core.Logger) {
	w.U32(a.RID)
	w.U32(a.Tex)
	w.U32(a.ColliderProfile)
	w.Usize(a.DefaultAnimIdx)

	w.VectorLen(len(a.Anims))
	for i := range a.Anims {
		writeAnim(w, log, &a.Anims[i])
	}

	w.VectorLen(len(a.Solved))
	for _, s := range a.Solved {
		w.U64(uint64(s.From))
		w.U64(uint64(s.To))
		w.U8(uint8(s.Policy))
	}
}

func writeAnim(w *serialize.Writer, log *core.Logger, a *Anim) {
	w.U32(uint32(a.Flags))
	w.F32(a.Duration)
	w.U64(uint64(a.Key))

	w.VectorLen(len(a.Samples))
	for _, s := range a.Samples {
		WriteSprite(w, s.Sprite)
		w.F32(s.Duration)
	}

	w.VectorLen(len(a.AccDurations))
	for _, d := range a.AccDurations {
		w.F32(d)
	}

	w.VectorLen(len(a.Keys))
	for _, k := range a.Keys {
		w.U32(uint32(k.Tag))
		w.U32(k.Frame)
		WriteParamSet(w, log, k.Params, MaxAnimKeyParamCount)
	}
}
