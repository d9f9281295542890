package metadata

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/enum"
	"github.com/spaghettifunk/rlres/engine/resources"
	"github.com/spaghettifunk/rlres/engine/serialize"
)

type CharType uint32

const (
	CharTypeUnknown CharType = iota
	CharTypeClass
	CharTypeSpecies
)

var CharTypes = enum.New("CharTypeName",
	enum.Pair[CharType]{Name: "unknown", Value: CharTypeUnknown},
	enum.Pair[CharType]{Name: "unknown", Value: CharTypeUnknown},
	enum.Pair[CharType]{Name: "class", Value: CharTypeClass},
	enum.Pair[CharType]{Name: "species", Value: CharTypeSpecies},
)

type CharFaction uint32

const (
	FactionNeutral CharFaction = iota
	FactionGood
	FactionEvil
)

var CharFactions = enum.New("CharFactionName",
	enum.Pair[CharFaction]{Name: "neutral", Value: FactionNeutral},
	enum.Pair[CharFaction]{Name: "neutral", Value: FactionNeutral},
	enum.Pair[CharFaction]{Name: "good", Value: FactionGood},
	enum.Pair[CharFaction]{Name: "evil", Value: FactionEvil},
)

type CharClass uint16

const (
	CharClassNone CharClass = iota
	CharClassAdventurer
	CharClassSwordsman
)

var CharClasses = enum.New("CharClassName",
	enum.Pair[CharClass]{Name: "none", Value: CharClassNone},
	enum.Pair[CharClass]{Name: "none", Value: CharClassNone},
	enum.Pair[CharClass]{Name: "adventurer", Value: CharClassAdventurer},
	enum.Pair[CharClass]{Name: "swordsman", Value: CharClassSwordsman},
)

type CharArchFlag uint32

const CharArchFlagNone CharArchFlag = 0

var CharArchFlags = enum.New("CharArchFlagName",
	enum.Pair[CharArchFlag]{Name: "none", Value: CharArchFlagNone},
	enum.Pair[CharArchFlag]{Name: "none", Value: CharArchFlagNone},
)

const (
	CharArchetypeVersion uint32 = 1
	/** @brief Ability slots stored inline in an archetype. */
	MaxAbilitySlotCount = 8
)

/** @brief Static description of a character kind. */
type CharArchetype struct {
	RID       resources.ResourceID
	Type      CharType
	Faction   CharFaction
	Flags     uint32
	ClassID   uint16
	Abilities []resources.ResourceID
	Physics   PhysicsBodyDesc
	AnimSet   resources.ResourceID
	StartAnim AnimID
	SoundBank resources.ResourceID
}

func (c *CharArchetype) TypeID() resources.TypeID { return resources.TypeIDCharArchetype }

func (c *CharArchetype) Version() uint32 { return CharArchetypeVersion }

func (c *CharArchetype) Serialize(w *serialize.Writer, _ *core.Logger) {
	w.U32(c.RID)
	w.U32(uint32(c.Type))
	w.U32(uint32(c.Faction))
	w.U32(c.Flags)
	w.U16(c.ClassID)

	w.U8(uint8(min(len(c.Abilities), MaxAbilitySlotCount)))
	for i := 0; i < MaxAbilitySlotCount; i++ {
		rid := resources.InvalidResourceID
		if i < len(c.Abilities) {
			rid = c.Abilities[i]
		}
		w.U32(rid)
	}

	WritePhysicsBodyDesc(w, c.Physics)
	w.U32(c.AnimSet)
	w.U32(uint32(c.StartAnim))
	w.U32(c.SoundBank)
}
