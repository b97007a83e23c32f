package models

import (
	"time"
)

type Attribute string

const (
	AttributeFire    Attribute = "Fire"
	AttributeWater   Attribute = "Water"
	AttributeWood    Attribute = "Wood"
	AttributeLight   Attribute = "Light"
	AttributeDark    Attribute = "Dark"
	AttributeUnknown Attribute = "Unknown"
	AttributeNil     Attribute = "Nil"
)

type MonsterType string

const (
	MonsterTypeEvolve   MonsterType = "Evolve"
	MonsterTypeBalanced MonsterType = "Balanced"
	MonsterTypePhysical MonsterType = "Physical"
	MonsterTypeHealer   MonsterType = "Healer"
	MonsterTypeDragon   MonsterType = "Dragon"
	MonsterTypeGod      MonsterType = "God"
	MonsterTypeAttacker MonsterType = "Attacker"
	MonsterTypeDevil    MonsterType = "Devil"
	MonsterTypeMachine  MonsterType = "Machine"
	MonsterTypeAwoken   MonsterType = "Awoken"
	MonsterTypeEnhance  MonsterType = "Enhance"
	MonsterTypeVendor   MonsterType = "Vendor"
)

// Monster is one row of the monster catalog. MonsterNoNA and MonsterNoJP are the
// two independent numbering schemes (global and native server).
type Monster struct {
	MonsterID   int         `json:"monster_id" gorm:"primaryKey;autoIncrement:false"`
	MonsterNoNA int         `json:"monster_no_na" gorm:"index"`
	MonsterNoJP int         `json:"monster_no_jp" gorm:"index"`
	NameEN      string      `json:"name_en" gorm:"not null;index"`
	NameJA      string      `json:"name_ja" gorm:"not null;default:''"`
	RomaSubname string      `json:"roma_subname"`
	Rarity      int         `json:"rarity"`
	Attr1       Attribute   `json:"attr1" gorm:"not null"`
	Attr2       Attribute   `json:"attr2"` // empty when the monster has no sub attribute
	Type1       MonsterType `json:"type1"`
	IsEquip     bool        `json:"is_equip"`
	Farmable    bool        `json:"farmable"`
	SeriesID    int         `json:"series_id" gorm:"index"`
	Series      *Series     `json:"series,omitempty" gorm:"foreignKey:SeriesID"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type Series struct {
	SeriesID int    `json:"series_id" gorm:"primaryKey;autoIncrement:false"`
	NameEN   string `json:"name_en"`
	NameJA   string `json:"name_ja"`
}

// EvolutionType is the kind of link between two monsters in an evolution tree.
type EvolutionType string

const (
	EvolutionNormal             EvolutionType = "Normal"
	EvolutionUltimate           EvolutionType = "Ultimate"
	EvolutionReincarnation      EvolutionType = "Reincarnation"
	EvolutionSuperReincarnation EvolutionType = "SuperReincarnation"
	EvolutionPixel              EvolutionType = "Pixel"
	EvolutionAssist             EvolutionType = "Assist"
)

type Evolution struct {
	ID            uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	FromID        int           `json:"from_id" gorm:"not null;uniqueIndex:idx_evo_from_to"`
	ToID          int           `json:"to_id" gorm:"not null;uniqueIndex:idx_evo_from_to"`
	EvolutionType EvolutionType `json:"evolution_type" gorm:"default:'Normal'"`
	Reversible    bool          `json:"reversible"`
}

// Transformation links a monster to the form it transforms into in battle.
// Transformed forms share the evolution tree of the monster they came from.
type Transformation struct {
	ID     uint `json:"id" gorm:"primaryKey;autoIncrement"`
	FromID int  `json:"from_id" gorm:"not null;uniqueIndex:idx_transform_from_to"`
	ToID   int  `json:"to_id" gorm:"not null;uniqueIndex:idx_transform_from_to"`
}

// HasSubAttribute reports whether Attr2 names a real attribute.
func (m *Monster) HasSubAttribute() bool {
	return m.Attr2 != "" && m.Attr2 != AttributeNil
}

// SeriesName returns the display name of the monster's series, or "" when unknown.
func (m *Monster) SeriesName() string {
	if m.Series == nil {
		return ""
	}
	return m.Series.NameEN
}
