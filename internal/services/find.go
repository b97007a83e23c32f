package services

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minQueryLength         = 4
	minJapaneseQueryLength = 2
)

// MatchStage names the resolver stage that produced a match.
type MatchStage string

const (
	StageNumber           MatchStage = "number"
	StageExactNickname    MatchStage = "exact_nickname"
	StageBaseID           MatchStage = "base_id"
	StageSpaceNickPrefix  MatchStage = "space_nickname_prefix"
	StageNicknamePrefix   MatchStage = "nickname_prefix"
	StageNamePrefix       MatchStage = "name_prefix"
	StageTwoWordNickname  MatchStage = "two_word_nickname"
	StageNameContains     MatchStage = "name_contains"
	StageCloseNickname    MatchStage = "close_nickname"
	StageCloseName        MatchStage = "close_name"
	StageAllWords         MatchStage = "all_words"
	StagePrefixedNickname MatchStage = "prefixed_nickname"
	StagePrefixedName     MatchStage = "prefixed_name"
	StagePantheon         MatchStage = "pantheon"
	StagePantheonContains MatchStage = "pantheon_contains"
)

// Match is a successfully resolved query.
type Match struct {
	Monster *NamedMonster
	Stage   MatchStage
	Reason  string
}

var baseIDSuffix = regexp.MustCompile(`base (\d+)$`)

// monsterSet collects candidate monsters without duplicates.
type monsterSet map[*NamedMonster]struct{}

func (s monsterSet) add(nm *NamedMonster) {
	if nm != nil {
		s[nm] = struct{}{}
	}
}

// pickBestMonster prefers high priority, then rarity, then the newest global number.
func pickBestMonster(candidates monsterSet) *NamedMonster {
	var best *NamedMonster
	for nm := range candidates {
		if best == nil || betterPick(nm, best) {
			best = nm
		}
	}
	return best
}

func betterPick(a, b *NamedMonster) bool {
	if a.IsLowPriority != b.IsLowPriority {
		return !a.IsLowPriority
	}
	if a.Rarity != b.Rarity {
		return a.Rarity > b.Rarity
	}
	if a.MonsterNoNA != b.MonsterNoNA {
		return a.MonsterNoNA > b.MonsterNoNA
	}
	return a.MonsterID > b.MonsterID
}

func names(candidates monsterSet) string {
	out := make([]string, 0, len(candidates))
	for nm := range candidates {
		out = append(out, nm.NameEN)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}

// resolveDirect runs the stages shared by both resolvers: number lookup,
// exact nickname and the minimum length gate. done is false when the query
// should continue to the fuzzier stages.
func (idx *MonsterIndex) resolveDirect(query string) (match *Match, done bool, err error) {
	if isDigits(query) {
		no, convErr := strconv.Atoi(query)
		if convErr == nil {
			if nm := idx.byNoNA[no]; nm != nil {
				return &Match{Monster: nm, Stage: StageNumber, Reason: "ID lookup"}, true, nil
			}
		}
		return nil, true, errUnknownNumber(query)
	}

	if nm, ok := idx.nicknames[query]; ok {
		return &Match{Monster: nm, Stage: StageExactNickname, Reason: "Exact nickname"}, true, nil
	}

	japanese := containsJapanese(query)
	length := utf8.RuneCountInString(query)
	if (japanese && length < minJapaneseQueryLength) || (!japanese && length < minQueryLength) {
		return nil, true, errTooShort(query, japanese)
	}

	return nil, false, nil
}

// baseIDMatch resolves "<anything>base <id>" to the base of that monster's tree.
func (idx *MonsterIndex) baseIDMatch(query string) *NamedMonster {
	groups := baseIDSuffix.FindStringSubmatch(query)
	if groups == nil {
		return nil
	}
	id, err := strconv.Atoi(groups[1])
	if err != nil {
		return nil
	}
	nm := idx.byMonsterID[id]
	if nm == nil {
		return nil
	}
	if base := idx.byMonsterID[nm.BaseMonsterID]; base != nil {
		return base
	}
	return nm
}

// FindMonster resolves a free-text query to the single best monster. Stages
// run from most to least precise and the first stage with a result wins.
func (idx *MonsterIndex) FindMonster(query string) (*Match, error) {
	query = normalizeQuery(query)

	if match, done, err := idx.resolveDirect(query); done {
		return match, err
	}

	if nm := idx.baseIDMatch(query); nm != nil {
		return &Match{Monster: nm, Stage: StageBaseID, Reason: "Base ID match, max of 1"}, nil
	}

	matches := monsterSet{}
	for _, nickname := range idx.sortedNicknames {
		if strings.HasPrefix(nickname, query+" ") {
			matches.add(idx.nicknames[nickname])
		}
	}
	if len(matches) > 0 {
		return &Match{
			Monster: pickBestMonster(matches),
			Stage:   StageSpaceNickPrefix,
			Reason:  fmt.Sprintf("Space nickname prefix, max of %d", len(matches)),
		}, nil
	}

	for _, nickname := range idx.sortedNicknames {
		if strings.HasPrefix(nickname, query) {
			matches.add(idx.nicknames[nickname])
		}
	}
	if len(matches) > 0 {
		return &Match{
			Monster: pickBestMonster(matches),
			Stage:   StageNicknamePrefix,
			Reason:  fmt.Sprintf("Nickname prefix, max of %d, matches=(%s)", len(matches), names(matches)),
		}, nil
	}

	for _, nm := range idx.monsters {
		if strings.HasPrefix(strings.ToLower(nm.NameEN), query) || strings.HasPrefix(strings.ToLower(nm.NameJA), query) {
			matches.add(nm)
		}
	}
	if len(matches) > 0 {
		return &Match{
			Monster: pickBestMonster(matches),
			Stage:   StageNamePrefix,
			Reason:  fmt.Sprintf("Full name, max of %d", len(matches)),
		}, nil
	}

	if nm, ok := idx.twoWordNicknames[query]; ok {
		return &Match{Monster: nm, Stage: StageTwoWordNickname, Reason: "Second-word nickname prefix, max of 1"}, nil
	}

	for _, nm := range idx.monsters {
		if strings.Contains(strings.ToLower(nm.NameEN), query) || strings.Contains(strings.ToLower(nm.NameJA), query) {
			matches.add(nm)
		}
	}
	if len(matches) > 0 {
		return &Match{
			Monster: pickBestMonster(matches),
			Stage:   StageNameContains,
			Reason:  fmt.Sprintf("Nickname contains nickname match (%d)", len(matches)),
		}, nil
	}

	if nickname, ok := closestMatch(query, idx.sortedNicknames, idx.nicknameCutoff, idx.similarity); ok {
		return &Match{
			Monster: idx.nicknames[nickname],
			Stage:   StageCloseNickname,
			Reason:  fmt.Sprintf("Close nickname match (%s)", nickname),
		}, nil
	}

	if name, ok := closestMatch(query, idx.sortedNames, idx.nameCutoff, idx.similarity); ok {
		return &Match{
			Monster: idx.byName[name],
			Stage:   StageCloseName,
			Reason:  fmt.Sprintf("Close name match (%s)", name),
		}, nil
	}

	words := strings.Fields(query)
	for _, nm := range idx.monsters {
		if containsAllWords(strings.ToLower(nm.NameEN), words) || containsAllWords(strings.ToLower(nm.NameJA), words) {
			matches.add(nm)
		}
	}
	if len(matches) > 0 {
		return &Match{
			Monster: pickBestMonster(matches),
			Stage:   StageAllWords,
			Reason:  fmt.Sprintf("All word match on full name, max of %d", len(matches)),
		}, nil
	}

	return nil, errNotFound(query)
}

func containsAllWords(name string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(name, w) {
			return false
		}
	}
	return true
}
