package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/padguide/internal/services"
)

// MonsterSummary is the JSON view of an indexed monster.
type MonsterSummary struct {
	MonsterID      int      `json:"monster_id"`
	MonsterNoNA    int      `json:"monster_no_na"`
	MonsterNoJP    int      `json:"monster_no_jp"`
	BaseMonsterID  int      `json:"base_monster_id"`
	NameEN         string   `json:"name_en"`
	NameJA         string   `json:"name_ja"`
	Series         string   `json:"series,omitempty"`
	Rarity         int      `json:"rarity"`
	IsLowPriority  bool     `json:"is_low_priority"`
	Basename       string   `json:"basename"`
	GroupBasenames []string `json:"group_basenames"`
	Prefixes       []string `json:"prefixes"`
	EvolutionTree  []int    `json:"evolution_tree"`
	Nicknames      []string `json:"nicknames,omitempty"`
	NicknameCount  int      `json:"nickname_count"`
}

// FindResponse is returned by both query endpoints.
type FindResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Monster *MonsterSummary `json:"monster"`
	Stage   string          `json:"stage"`
	Reason  string          `json:"reason"`
}

func newMonsterSummary(nm *services.NamedMonster, withNicknames bool) *MonsterSummary {
	tree := nm.EvolutionTree()
	treeIDs := make([]int, 0, len(tree))
	for _, member := range tree {
		treeIDs = append(treeIDs, member.MonsterID)
	}

	nicknames := nm.Nicknames()
	summary := &MonsterSummary{
		MonsterID:      nm.MonsterID,
		MonsterNoNA:    nm.MonsterNoNA,
		MonsterNoJP:    nm.MonsterNoJP,
		BaseMonsterID:  nm.BaseMonsterID,
		NameEN:         nm.NameEN,
		NameJA:         nm.NameJA,
		Series:         nm.Series,
		Rarity:         nm.Rarity,
		IsLowPriority:  nm.IsLowPriority,
		Basename:       nm.MonsterBasename,
		GroupBasenames: nm.GroupBasenames,
		Prefixes:       nm.Prefixes(),
		EvolutionTree:  treeIDs,
		NicknameCount:  len(nicknames),
	}
	if withNicknames {
		summary.Nicknames = nicknames
	}
	return summary
}

type MonsterHandler struct {
	indexService *services.IndexService
}

func NewMonsterHandler(indexService *services.IndexService) *MonsterHandler {
	return &MonsterHandler{
		indexService: indexService,
	}
}

// FindMonster resolves ?q= with the free-text resolver
func (h *MonsterHandler) FindMonster(c *gin.Context) {
	h.find(c, services.ModeFind, h.indexService.Find)
}

// FindMonsterConstrained resolves ?q= treating leading prefixes as hard filters
func (h *MonsterHandler) FindMonsterConstrained(c *gin.Context) {
	h.find(c, services.ModeConstrained, h.indexService.FindConstrained)
}

func (h *MonsterHandler) find(c *gin.Context, mode string, resolve func(string) (*services.Match, error)) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'q' is required"})
		return
	}

	match, err := resolve(query)
	if err != nil {
		writeQueryError(c, query, err)
		return
	}

	c.JSON(http.StatusOK, FindResponse{
		Query:   query,
		Mode:    mode,
		Monster: newMonsterSummary(match.Monster, false),
		Stage:   string(match.Stage),
		Reason:  match.Reason,
	})
}

func writeQueryError(c *gin.Context, query string, err error) {
	var noMatch *services.NoMatchError
	switch {
	case errors.As(err, &noMatch):
		status := http.StatusNotFound
		if noMatch.Kind == services.NoMatchTooShort {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error": noMatch.Message,
			"kind":  noMatch.Kind,
			"query": query,
		})
	case errors.Is(err, services.ErrIndexNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		log.Printf("Monster query %q failed: %v", query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetMonster looks a monster up by number. ?server=jp switches to native numbering.
func (h *MonsterHandler) GetMonster(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monster number must be an integer"})
		return
	}

	idx := h.indexService.Index()
	if idx == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": services.ErrIndexNotReady.Error()})
		return
	}

	var nm *services.NamedMonster
	switch strings.ToLower(c.Query("server")) {
	case "", "na":
		nm = idx.ByNumber(number)
	case "jp":
		nm = idx.ByNativeNumber(number)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "server parameter must be 'na' or 'jp'"})
		return
	}

	if nm == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "monster not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"monster": newMonsterSummary(nm, true),
	})
}

// GetIndexStatus returns the active index generation and last rebuild outcome
func (h *MonsterHandler) GetIndexStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.indexService.Status())
}

// RebuildIndex rebuilds the index from the database immediately
func (h *MonsterHandler) RebuildIndex(c *gin.Context) {
	if err := h.indexService.Rebuild(c.Request.Context()); err != nil {
		log.Printf("Manual index rebuild failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  err.Error(),
			"status": h.indexService.Status(),
		})
		return
	}

	c.JSON(http.StatusOK, h.indexService.Status())
}
