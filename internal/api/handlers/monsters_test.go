package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/models"
	"github.com/codyseavey/padguide/internal/services"
)

func testLoader(ctx context.Context) (services.MonsterSource, error) {
	monsters := []models.Monster{
		{MonsterID: 1, MonsterNoNA: 1, MonsterNoJP: 1, NameEN: "Hera", NameJA: "ヘラ", Rarity: 5, Attr1: models.AttributeDark, Type1: models.MonsterTypeGod},
		{MonsterID: 2, MonsterNoNA: 2, MonsterNoJP: 2, NameEN: "Awoken Hera", NameJA: "覚醒ヘラ", Rarity: 7, Attr1: models.AttributeDark, Attr2: models.AttributeWater, Type1: models.MonsterTypeGod},
		{MonsterID: 3, MonsterNoNA: 3, MonsterNoJP: 4000, NameEN: "Zeus", NameJA: "ゼウス", Rarity: 6, Attr1: models.AttributeLight, Type1: models.MonsterTypeGod},
	}
	evolutions := []models.Evolution{
		{FromID: 1, ToID: 2, EvolutionType: models.EvolutionUltimate},
	}
	return services.NewMonsterGraph(monsters, nil, evolutions, nil), nil
}

func setupRouter(t *testing.T, build bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := services.NewIndexService(testLoader, config.DefaultSettings(), time.Hour, 16)
	if build {
		if err := svc.Rebuild(context.Background()); err != nil {
			t.Fatalf("Rebuild() error: %v", err)
		}
	}

	h := NewMonsterHandler(svc)
	router := gin.New()
	router.GET("/find", h.FindMonster)
	router.GET("/find2", h.FindMonsterConstrained)
	router.GET("/monsters/:number", h.GetMonster)
	router.GET("/status", h.GetIndexStatus)
	router.POST("/rebuild", h.RebuildIndex)
	return router
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestFindMonsterHandler(t *testing.T) {
	router := setupRouter(t, true)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantID     int
		wantKind   string
	}{
		{"exact nickname", "/find?q=awoken+hera", http.StatusOK, 2, ""},
		{"number", "/find?q=3", http.StatusOK, 3, ""},
		{"constrained", "/find2?q=l+zeus", http.StatusOK, 3, ""},
		{"missing query", "/find", http.StatusBadRequest, 0, ""},
		{"too short", "/find?q=ze", http.StatusBadRequest, 0, "too_short"},
		{"unknown number", "/find?q=999", http.StatusNotFound, 0, "unknown_number"},
		{"not found", "/find2?q=qwertyuiop", http.StatusNotFound, 0, "not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.target)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}

			if tt.wantID != 0 {
				var resp FindResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Monster == nil || resp.Monster.MonsterID != tt.wantID {
					t.Errorf("monster = %+v, want %d", resp.Monster, tt.wantID)
				}
				if resp.Stage == "" || resp.Reason == "" {
					t.Errorf("response missing stage or reason: %+v", resp)
				}
			}

			if tt.wantKind != "" {
				var resp map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp["kind"] != tt.wantKind {
					t.Errorf("kind = %q, want %q", resp["kind"], tt.wantKind)
				}
			}
		})
	}
}

func TestFindMonsterHandlerNotReady(t *testing.T) {
	router := setupRouter(t, false)

	w := doRequest(router, http.MethodGet, "/find?q=hera")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/monsters/1")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGetMonsterHandler(t *testing.T) {
	router := setupRouter(t, true)

	tests := []struct {
		target     string
		wantStatus int
		wantID     int
	}{
		{"/monsters/2", http.StatusOK, 2},
		{"/monsters/4000?server=jp", http.StatusOK, 3},
		{"/monsters/4000", http.StatusNotFound, 0},
		{"/monsters/abc", http.StatusBadRequest, 0},
		{"/monsters/1?server=kr", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		w := doRequest(router, http.MethodGet, tt.target)
		if w.Code != tt.wantStatus {
			t.Errorf("GET %s status = %d, want %d", tt.target, w.Code, tt.wantStatus)
			continue
		}
		if tt.wantID == 0 {
			continue
		}

		var resp struct {
			Monster MonsterSummary `json:"monster"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Monster.MonsterID != tt.wantID {
			t.Errorf("GET %s monster = %d, want %d", tt.target, resp.Monster.MonsterID, tt.wantID)
		}
		if len(resp.Monster.Nicknames) == 0 || resp.Monster.NicknameCount != len(resp.Monster.Nicknames) {
			t.Errorf("GET %s nicknames = %d (count %d)", tt.target, len(resp.Monster.Nicknames), resp.Monster.NicknameCount)
		}
	}
}

func TestIndexStatusAndRebuild(t *testing.T) {
	router := setupRouter(t, false)

	w := doRequest(router, http.MethodGet, "/status")
	var status services.IndexStatus
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Ready {
		t.Error("status should not be ready before a build")
	}

	w = doRequest(router, http.MethodPost, "/rebuild")
	if w.Code != http.StatusOK {
		t.Fatalf("rebuild status = %d, body %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if !status.Ready || status.Monsters != 3 {
		t.Errorf("status after rebuild = %+v", status)
	}
}

func TestRebuildHandlerFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loader := func(ctx context.Context) (services.MonsterSource, error) {
		return nil, errors.New("database unavailable")
	}
	h := NewMonsterHandler(services.NewIndexService(loader, config.DefaultSettings(), time.Hour, 16))
	router := gin.New()
	router.POST("/rebuild", h.RebuildIndex)

	w := doRequest(router, http.MethodPost, "/rebuild")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
