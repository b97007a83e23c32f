package models

// EvoType is the coarse evolution stage used for nickname prefixes.
type EvoType string

const (
	EvoTypeBase             EvoType = "Base"
	EvoTypeEvo              EvoType = "Evo"
	EvoTypeUvoAwoken        EvoType = "UvoAwoken"
	EvoTypeUuvoReincarnated EvoType = "UuvoReincarnated"
)

// InternalEvoType is the exact kind of evolution that produced a monster.
type InternalEvoType string

const (
	InternalEvoBase              InternalEvoType = "Base"
	InternalEvoNormal            InternalEvoType = "Normal"
	InternalEvoUltimate          InternalEvoType = "Ultimate"
	InternalEvoReincarnated      InternalEvoType = "Reincarnated"
	InternalEvoSuperReincarnated InternalEvoType = "SuperReincarnated"
	InternalEvoPixel             InternalEvoType = "Pixel"
	InternalEvoAssist            InternalEvoType = "Assist"
)

// InternalEvoTypeFor maps the link that produced a monster to its internal evo type.
func InternalEvoTypeFor(t EvolutionType) InternalEvoType {
	switch t {
	case EvolutionUltimate:
		return InternalEvoUltimate
	case EvolutionReincarnation:
		return InternalEvoReincarnated
	case EvolutionSuperReincarnation:
		return InternalEvoSuperReincarnated
	case EvolutionPixel:
		return InternalEvoPixel
	case EvolutionAssist:
		return InternalEvoAssist
	default:
		return InternalEvoNormal
	}
}

// EvoTypeFor collapses an internal evo type to the coarse stage. Pixel and
// assist evolutions are ultimate evolutions in disguise.
func EvoTypeFor(t InternalEvoType) EvoType {
	switch t {
	case InternalEvoBase:
		return EvoTypeBase
	case InternalEvoNormal:
		return EvoTypeEvo
	case InternalEvoReincarnated, InternalEvoSuperReincarnated:
		return EvoTypeUuvoReincarnated
	default:
		return EvoTypeUvoAwoken
	}
}
