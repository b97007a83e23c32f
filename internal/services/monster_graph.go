package services

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/codyseavey/padguide/internal/models"
)

// MonsterSource is the read-only view of the monster catalog that an index is
// built from. Implementations must not change while a build is running.
type MonsterSource interface {
	BaseMonsterIDs() []int
	Monster(id int) *models.Monster
	EvolutionTreeIDs(baseID int) []int
	// BaseMonster resolves the root of m's tree, following transformations
	// back to the monster they came from.
	BaseMonster(m *models.Monster) *models.Monster
	CurEvoType(m *models.Monster) models.EvoType
	TrueEvoType(m *models.Monster) models.InternalEvoType
	IsFarmableEvo(m *models.Monster) bool
}

type evolutionLink struct {
	fromID  int
	evoType models.EvolutionType
}

// MonsterGraph is an immutable in-memory snapshot of monsters and the links
// between them.
type MonsterGraph struct {
	monsters      map[int]*models.Monster
	prev          map[int]evolutionLink // to -> incoming evolution
	next          map[int][]int         // from -> evolutions, sorted by id
	transformFrom map[int]int           // transformed form -> source
	transformTo   map[int][]int         // source -> transformed forms, sorted by id
}

// NewMonsterGraph builds a graph from fully materialized catalog rows.
func NewMonsterGraph(monsters []models.Monster, series []models.Series, evolutions []models.Evolution, transforms []models.Transformation) *MonsterGraph {
	g := &MonsterGraph{
		monsters:      make(map[int]*models.Monster, len(monsters)),
		prev:          make(map[int]evolutionLink),
		next:          make(map[int][]int),
		transformFrom: make(map[int]int),
		transformTo:   make(map[int][]int),
	}

	seriesByID := make(map[int]*models.Series, len(series))
	for i := range series {
		seriesByID[series[i].SeriesID] = &series[i]
	}

	for i := range monsters {
		m := monsters[i]
		if m.Series == nil {
			m.Series = seriesByID[m.SeriesID]
		}
		g.monsters[m.MonsterID] = &m
	}

	for _, evo := range evolutions {
		if g.monsters[evo.FromID] == nil || g.monsters[evo.ToID] == nil {
			continue
		}
		g.prev[evo.ToID] = evolutionLink{fromID: evo.FromID, evoType: evo.EvolutionType}
		g.next[evo.FromID] = append(g.next[evo.FromID], evo.ToID)
	}
	for _, tf := range transforms {
		if g.monsters[tf.FromID] == nil || g.monsters[tf.ToID] == nil {
			continue
		}
		if _, ok := g.transformFrom[tf.ToID]; ok {
			continue
		}
		g.transformFrom[tf.ToID] = tf.FromID
		g.transformTo[tf.FromID] = append(g.transformTo[tf.FromID], tf.ToID)
	}

	for _, ids := range g.next {
		sort.Ints(ids)
	}
	for _, ids := range g.transformTo {
		sort.Ints(ids)
	}

	return g
}

// LoadMonsterGraph reads a consistent snapshot of the catalog from the database.
// All tables are read inside one transaction.
func LoadMonsterGraph(ctx context.Context, db *gorm.DB) (*MonsterGraph, error) {
	var (
		monsters   []models.Monster
		series     []models.Series
		evolutions []models.Evolution
		transforms []models.Transformation
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("monster_id").Find(&monsters).Error; err != nil {
			return fmt.Errorf("failed to load monsters: %w", err)
		}
		if err := tx.Find(&series).Error; err != nil {
			return fmt.Errorf("failed to load series: %w", err)
		}
		if err := tx.Order("id").Find(&evolutions).Error; err != nil {
			return fmt.Errorf("failed to load evolutions: %w", err)
		}
		if err := tx.Order("id").Find(&transforms).Error; err != nil {
			return fmt.Errorf("failed to load transformations: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return NewMonsterGraph(monsters, series, evolutions, transforms), nil
}

// MonsterCount returns the number of monsters in the snapshot.
func (g *MonsterGraph) MonsterCount() int {
	return len(g.monsters)
}

// BaseMonsterIDs returns the roots of every evolution tree in ascending order.
func (g *MonsterGraph) BaseMonsterIDs() []int {
	ids := make([]int, 0)
	for id := range g.monsters {
		if _, ok := g.prev[id]; ok {
			continue
		}
		if _, ok := g.transformFrom[id]; ok {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (g *MonsterGraph) Monster(id int) *models.Monster {
	return g.monsters[id]
}

// EvolutionTreeIDs walks the tree rooted at baseID breadth first. Children are
// visited in id order so the result is stable between snapshots.
func (g *MonsterGraph) EvolutionTreeIDs(baseID int) []int {
	if g.monsters[baseID] == nil {
		return nil
	}

	seen := map[int]bool{baseID: true}
	order := []int{baseID}
	for i := 0; i < len(order); i++ {
		id := order[i]
		children := append(append([]int{}, g.next[id]...), g.transformTo[id]...)
		for _, child := range children {
			if !seen[child] {
				seen[child] = true
				order = append(order, child)
			}
		}
	}
	return order
}

// BaseMonster follows evolution and transformation links back to the tree root.
func (g *MonsterGraph) BaseMonster(m *models.Monster) *models.Monster {
	cur := m.MonsterID
	seen := map[int]bool{}
	for !seen[cur] {
		seen[cur] = true
		if link, ok := g.prev[cur]; ok {
			cur = link.fromID
			continue
		}
		if from, ok := g.transformFrom[cur]; ok {
			cur = from
			continue
		}
		break
	}
	if base := g.monsters[cur]; base != nil {
		return base
	}
	return m
}

// TrueEvoType reports the kind of evolution that produced m. Transformed forms
// inherit the type of the monster they transform from.
func (g *MonsterGraph) TrueEvoType(m *models.Monster) models.InternalEvoType {
	cur := m.MonsterID
	seen := map[int]bool{}
	for !seen[cur] {
		seen[cur] = true
		if link, ok := g.prev[cur]; ok {
			return models.InternalEvoTypeFor(link.evoType)
		}
		from, ok := g.transformFrom[cur]
		if !ok {
			break
		}
		cur = from
	}
	return models.InternalEvoBase
}

func (g *MonsterGraph) CurEvoType(m *models.Monster) models.EvoType {
	return models.EvoTypeFor(g.TrueEvoType(m))
}

// IsFarmableEvo reports whether m or anything it evolves from can be farmed.
func (g *MonsterGraph) IsFarmableEvo(m *models.Monster) bool {
	cur := m.MonsterID
	seen := map[int]bool{}
	for !seen[cur] {
		seen[cur] = true
		if mon := g.monsters[cur]; mon != nil && mon.Farmable {
			return true
		}
		if link, ok := g.prev[cur]; ok {
			cur = link.fromID
			continue
		}
		if from, ok := g.transformFrom[cur]; ok {
			cur = from
			continue
		}
		break
	}
	return false
}
