package resources

import (
	"github.com/spaghettifunk/rlres/engine/core"
	"github.com/spaghettifunk/rlres/engine/enum"
)

/** @brief Stable lowercase resource type name, used in NIDs and directory layout. */
type TypeName string

/** @brief Pre-defined resource type names. */
const (
	TypeUnknown         TypeName = "unknown"
	TypeResourceIndex   TypeName = "residx"
	TypeTexture         TypeName = "tex"
	TypeAtlas           TypeName = "atlas"
	TypeAnimSet         TypeName = "animset"
	TypeColliderProfile TypeName = "animcolprofile"
	TypeSound           TypeName = "sound"
	TypeSoundBank       TypeName = "soundbank"
	TypeFont            TypeName = "font"
	TypeCharArchetype   TypeName = "chararch"
	TypeAbility         TypeName = "ability"
	TypeMaterial        TypeName = "mat"
)

/** @brief Sub-type names that are encoded by a small enumeration instead of a RID. */
const SubTypeAnim = "anim"

/** @brief Stable resource type id persisted in binary headers. */
type TypeID uint32

const (
	TypeIDUnknown         TypeID = 0
	TypeIDResourceIndex   TypeID = 1
	TypeIDTexture         TypeID = 2
	TypeIDAtlas           TypeID = 3
	TypeIDAnimSet         TypeID = 4
	TypeIDColliderProfile TypeID = 5
	TypeIDSound           TypeID = 6
	TypeIDSoundBank       TypeID = 7
	TypeIDFont            TypeID = 8

	// High-range game ids.
	TypeIDCharArchetype TypeID = 1000
	TypeIDAbility       TypeID = 1001
	TypeIDHurtboxSet    TypeID = 1002
	TypeIDMaterial      TypeID = 1003
)

/** @brief A 32-bit FNV-1a hash of a NID. */
type ResourceID = uint32

/** @brief Sentinel for an unresolved reference. */
const InvalidResourceID ResourceID = 0xFFFFFFFF

var typeTable = enum.New("ResourceTypeName",
	enum.Pair[TypeID]{Name: string(TypeUnknown), Value: TypeIDUnknown},
	enum.Pair[TypeID]{Name: string(TypeUnknown), Value: TypeIDUnknown},
	enum.Pair[TypeID]{Name: string(TypeResourceIndex), Value: TypeIDResourceIndex},
	enum.Pair[TypeID]{Name: string(TypeTexture), Value: TypeIDTexture},
	enum.Pair[TypeID]{Name: string(TypeAtlas), Value: TypeIDAtlas},
	enum.Pair[TypeID]{Name: string(TypeAnimSet), Value: TypeIDAnimSet},
	enum.Pair[TypeID]{Name: string(TypeColliderProfile), Value: TypeIDColliderProfile},
	enum.Pair[TypeID]{Name: string(TypeSound), Value: TypeIDSound},
	enum.Pair[TypeID]{Name: string(TypeSoundBank), Value: TypeIDSoundBank},
	enum.Pair[TypeID]{Name: string(TypeFont), Value: TypeIDFont},
	enum.Pair[TypeID]{Name: string(TypeCharArchetype), Value: TypeIDCharArchetype},
	enum.Pair[TypeID]{Name: string(TypeAbility), Value: TypeIDAbility},
	enum.Pair[TypeID]{Name: string(TypeMaterial), Value: TypeIDMaterial},
)

// TypeIDOf maps a type name to its id. Unknown names map to TypeIDUnknown.
func TypeIDOf(log *core.Logger, name TypeName) TypeID {
	return typeTable.Value(log, string(name))
}

// TypeNameOf maps a type id to its name. Unknown ids map to TypeUnknown.
func TypeNameOf(log *core.Logger, id TypeID) TypeName {
	return TypeName(typeTable.Name(log, id))
}

// ComputeRID hashes a NID.
func ComputeRID(nid string) ResourceID {
	return core.FNV1a32(nid)
}
