package services

import (
	"fmt"
	"strings"
)

// potentialMatches is the candidate pool of the constrained resolver.
type potentialMatches struct {
	matches monsterSet
}

func newPotentialMatches() *potentialMatches {
	return &potentialMatches{matches: monsterSet{}}
}

func (p *potentialMatches) add(nm *NamedMonster) {
	p.matches.add(nm)
}

func (p *potentialMatches) addAll(monsters []*NamedMonster) {
	for _, nm := range monsters {
		p.matches.add(nm)
	}
}

// refine widens the pool to whole evolution trees and then keeps only the
// monsters that carry every query prefix.
func (p *potentialMatches) refine(queryPrefixes []string) {
	widened := monsterSet{}
	for nm := range p.matches {
		widened.add(nm)
		for _, sibling := range nm.evolutionTree {
			widened.add(sibling)
		}
	}
	for nm := range widened {
		if !nm.HasPrefixes(queryPrefixes) {
			delete(widened, nm)
		}
	}
	p.matches = widened
}

func (p *potentialMatches) count() int {
	return len(p.matches)
}

// splitQueryPrefixes separates the leading run of known prefixes from the
// rest of the query.
func (idx *MonsterIndex) splitQueryPrefixes(query string) (prefixes []string, rest string) {
	words := strings.Fields(query)
	for i, word := range words {
		if !idx.allPrefixes.has(word) {
			return prefixes, strings.Join(words[i:], " ")
		}
		prefixes = append(prefixes, word)
	}
	return prefixes, ""
}

// FindMonsterConstrained resolves a query whose leading words are prefixes
// that the result must carry, e.g. "r/b awoken hera". Without leading
// prefixes it behaves like FindMonster.
func (idx *MonsterIndex) FindMonsterConstrained(query string) (*Match, error) {
	query = normalizeQuery(query)

	if match, done, err := idx.resolveDirect(query); done {
		return match, err
	}

	queryPrefixes, rest := idx.splitQueryPrefixes(query)
	if len(queryPrefixes) == 0 {
		return idx.FindMonster(query)
	}

	type stage struct {
		name    MatchStage
		reason  string
		collect func(p *potentialMatches)
	}

	stages := []stage{
		{StageBaseID, "Base ID match", func(p *potentialMatches) {
			p.add(idx.baseIDMatch(query))
		}},
		{StagePrefixedNickname, "Prefixed nickname match", func(p *potentialMatches) {
			for _, nickname := range idx.sortedNicknames {
				if strings.Contains(nickname, rest) {
					p.add(idx.nicknames[nickname])
				}
			}
		}},
		{StagePrefixedName, "Prefixed name match", func(p *potentialMatches) {
			for _, nm := range idx.monsters {
				if strings.Contains(strings.ToLower(nm.NameEN), rest) || strings.Contains(strings.ToLower(nm.NameJA), rest) {
					p.add(nm)
				}
			}
		}},
		{StagePantheon, "Pantheon match", func(p *potentialMatches) {
			for _, nick := range idx.pantheonNicks {
				if rest == nick {
					p.addAll(idx.Pantheon(nick))
				}
			}
		}},
		{StagePantheonContains, "Partial pantheon match", func(p *potentialMatches) {
			for _, nick := range idx.pantheonNicks {
				if strings.Contains(nick, rest) {
					p.addAll(idx.Pantheon(nick))
				}
			}
		}},
	}

	for _, s := range stages {
		candidates := newPotentialMatches()
		s.collect(candidates)
		candidates.refine(queryPrefixes)
		if candidates.count() > 0 {
			return &Match{
				Monster: pickBestMonster(candidates.matches),
				Stage:   s.name,
				Reason:  fmt.Sprintf("%s with prefixes [%s], max of %d", s.reason, strings.Join(queryPrefixes, " "), candidates.count()),
			}, nil
		}
	}

	return nil, errNotFound(query)
}
