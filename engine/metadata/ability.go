package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/enum"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

/** @brief Instruction opcode of an ability program. */
type AbilityOp uint32

const (
	OpNoOp AbilityOp = iota
	OpSleep
	OpPlayAnim
	OpWaitAnim
	OpSetAnimSpeed
	OpSetGCD
	OpSetCD
	OpDamage
	OpSpawnHitbox
	OpSpawnStickyHitbox
	OpDash
	OpEnd
)

var AbilityOps = enum.New("AbilityOpName",
	enum.Pair[AbilityOp]{Name: "no_op", Value: OpNoOp},
	enum.Pair[AbilityOp]{Name: "no_op", Value: OpNoOp},
	enum.Pair[AbilityOp]{Name: "sleep", Value: OpSleep},
	enum.Pair[AbilityOp]{Name: "play_anim", Value: OpPlayAnim},
	enum.Pair[AbilityOp]{Name: "wait_anim", Value: OpWaitAnim},
	enum.Pair[AbilityOp]{Name: "set_anim_speed", Value: OpSetAnimSpeed},
	enum.Pair[AbilityOp]{Name: "set_gcd", Value: OpSetGCD},
	enum.Pair[AbilityOp]{Name: "set_cd", Value: OpSetCD},
	enum.Pair[AbilityOp]{Name: "damage", Value: OpDamage},
	enum.Pair[AbilityOp]{Name: "spawn_hitbox", Value: OpSpawnHitbox},
	enum.Pair[AbilityOp]{Name: "spawn_sticky_hitbox", Value: OpSpawnStickyHitbox},
	enum.Pair[AbilityOp]{Name: "dash", Value: OpDash},
	enum.Pair[AbilityOp]{Name: "end", Value: OpEnd},
)

type AbilityFlag uint32

const (
	AbilityFlagNone         AbilityFlag = 0x0
	AbilityFlagLockMovement AbilityFlag = 0x1
	AbilityFlagUninterrupt  AbilityFlag = 0x2
)

var AbilityFlags = enum.New("AbilityFlagName",
	enum.Pair[AbilityFlag]{Name: "none", Value: AbilityFlagNone},
	enum.Pair[AbilityFlag]{Name: "none", Value: AbilityFlagNone},
	enum.Pair[AbilityFlag]{Name: "lock_movement", Value: AbilityFlagLockMovement},
	enum.Pair[AbilityFlag]{Name: "uninterrupt", Value: AbilityFlagUninterrupt},
)

const (
	AbilityVersion uint32 = 1
	/** @brief Fixed number of parameter slots per instruction. */
	MaxAbilityParamCount = 5
)

type AbilityInstruction struct {
	Op     AbilityOp
	Params []uint64
}

type AbilityProgram struct {
	Code []AbilityInstruction
}

/** @brief Costs, flags and the three scripted phases of an ability. */
type Ability struct {
	RID     resources.ResourceID
	Stamina float32
	Mana    float32
	Flags   uint32
	OnBegin AbilityProgram
	OnTick  AbilityProgram
	OnEnd   AbilityProgram
}

func (a *Ability) TypeID() resources.TypeID { return resources.TypeIDAbility }

func (a *Ability) Version() uint32 { return AbilityVersion }

func (a *Ability) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(a.RID)
	w.F32(a.Stamina)
	w.F32(a.Mana)
	w.U32(a.Flags)
	for _, prog := range []*AbilityProgram{&a.OnBegin, &a.OnTick, &a.OnEnd} {
		w.U64(uint64(len(prog.Code)))
		for _, inst := range prog.Code {
			w.U32(uint32(inst.Op))
			writeAbilityParams(w, inst.Params)
		}
	}
}

// Ability slots keep only the low 32 bits of each parameter. Extra params
// are dropped silently.
func writeAbilityParams(w *serialize.Writer, params []uint64) {
	for i := 0; i < MaxAbilityParamCount; i++ {
		var v uint64
		if i < len(params) {
			v = params[i] & 0xFFFFFFFF
		}
		w.U64(v)
	}
}
