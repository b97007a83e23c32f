package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"

	"github.com/codyseavey/padguide/internal/config"
	"github.com/codyseavey/padguide/internal/metrics"
)

// ErrIndexNotReady is returned by queries issued before the first successful build.
var ErrIndexNotReady = errors.New("monster index is not ready")

// Query modes, also used as metric labels.
const (
	ModeFind        = "find"
	ModeConstrained = "constrained"
)

// SourceLoader produces a fresh catalog snapshot for a rebuild.
type SourceLoader func(ctx context.Context) (MonsterSource, error)

// DatabaseSourceLoader loads snapshots through LoadMonsterGraph.
func DatabaseSourceLoader(db *gorm.DB) SourceLoader {
	return func(ctx context.Context) (MonsterSource, error) {
		return LoadMonsterGraph(ctx, db)
	}
}

type cachedResult struct {
	match *Match
	err   error
}

// indexGeneration is one immutable build. Cached results never outlive it.
type indexGeneration struct {
	id            string
	index         *MonsterIndex
	builtAt       time.Time
	buildDuration time.Duration
	cache         *lru.Cache[string, cachedResult]
}

// IndexStatus describes the active generation and the last rebuild attempt.
type IndexStatus struct {
	Ready              bool          `json:"ready"`
	Generation         string        `json:"generation,omitempty"`
	BuiltAt            *time.Time    `json:"built_at,omitempty"`
	BuildDuration      time.Duration `json:"build_duration_ns"`
	Monsters           int           `json:"monsters"`
	Nicknames          int           `json:"nicknames"`
	ContestedNicknames int           `json:"contested_nicknames"`
	Prefixes           int           `json:"prefixes"`
	LastAttempt        *time.Time    `json:"last_attempt,omitempty"`
	LastError          string        `json:"last_error,omitempty"`
}

// IndexService owns the active MonsterIndex. Rebuilds swap in a complete new
// generation so readers never observe a partially built index.
type IndexService struct {
	loader          SourceLoader
	settings        config.Settings
	refreshInterval time.Duration
	cacheSize       int

	current atomic.Pointer[indexGeneration]

	buildMu     sync.Mutex // serializes rebuilds
	statusMu    sync.RWMutex
	lastAttempt time.Time
	lastErr     error
}

// NewIndexService creates a service that builds from loader. A cacheSize of
// zero or less disables the query cache.
func NewIndexService(loader SourceLoader, settings config.Settings, refreshInterval time.Duration, cacheSize int) *IndexService {
	return &IndexService{
		loader:          loader,
		settings:        settings,
		refreshInterval: refreshInterval,
		cacheSize:       cacheSize,
	}
}

// Start builds the first generation and then rebuilds on every refresh
// interval until ctx is cancelled.
func (s *IndexService) Start(ctx context.Context) {
	log.Printf("Monster index: service started, refreshing every %v", s.refreshInterval)

	if s.current.Load() == nil {
		if err := s.Rebuild(ctx); err != nil {
			log.Printf("Monster index: initial build failed: %v", err)
		}
	}

	if s.refreshInterval <= 0 {
		<-ctx.Done()
		log.Println("Monster index: service stopping...")
		return
	}

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Monster index: service stopping...")
			return
		case <-ticker.C:
			if err := s.Rebuild(ctx); err != nil {
				log.Printf("Monster index: rebuild failed, keeping previous generation: %v", err)
			}
		}
	}
}

// Rebuild loads a fresh snapshot and swaps in a new generation. On failure the
// previous generation stays active.
func (s *IndexService) Rebuild(ctx context.Context) (err error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	start := time.Now()
	result := "success"
	defer func() {
		if r := recover(); r != nil {
			result = "panic"
			err = fmt.Errorf("index build panicked: %v", r)
		}
		metrics.IndexBuildsTotal.WithLabelValues(result).Inc()
		metrics.IndexBuildDuration.Observe(time.Since(start).Seconds())
		s.recordAttempt(start, err)
	}()

	src, err := s.loader(ctx)
	if err != nil {
		result = "load_failed"
		return fmt.Errorf("failed to load monster snapshot: %w", err)
	}

	opts, err := OptionsFromSettings(s.settings)
	if err != nil {
		result = "build_failed"
		return err
	}

	idx, err := BuildMonsterIndex(src, opts)
	if err != nil {
		result = "build_failed"
		return fmt.Errorf("failed to build monster index: %w", err)
	}

	gen := &indexGeneration{
		id:            uuid.New().String(),
		index:         idx,
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
	}
	if s.cacheSize > 0 {
		gen.cache, err = lru.New[string, cachedResult](s.cacheSize)
		if err != nil {
			result = "build_failed"
			return fmt.Errorf("failed to create query cache: %w", err)
		}
	}
	s.current.Store(gen)

	metrics.IndexLastBuildTimestamp.Set(float64(gen.builtAt.Unix()))
	metrics.IndexMonsters.Set(float64(idx.MonsterCount()))
	metrics.IndexNicknames.Set(float64(idx.NicknameCount()))
	metrics.IndexContestedNicknames.Set(float64(idx.ContestedNicknames()))
	metrics.IndexPrefixes.Set(float64(len(idx.allPrefixes)))

	log.Printf("Monster index: built generation %s (%d monsters, %d nicknames) in %v",
		gen.id, idx.MonsterCount(), idx.NicknameCount(), gen.buildDuration.Round(time.Millisecond))

	return nil
}

func (s *IndexService) recordAttempt(at time.Time, err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.lastAttempt = at
	s.lastErr = err
}

// Index returns the active index, or nil before the first successful build.
func (s *IndexService) Index() *MonsterIndex {
	if gen := s.current.Load(); gen != nil {
		return gen.index
	}
	return nil
}

// Ready reports whether a generation is available for queries.
func (s *IndexService) Ready() bool {
	return s.current.Load() != nil
}

// Status reports the active generation and the outcome of the last rebuild.
func (s *IndexService) Status() IndexStatus {
	var status IndexStatus

	if gen := s.current.Load(); gen != nil {
		builtAt := gen.builtAt
		status.Ready = true
		status.Generation = gen.id
		status.BuiltAt = &builtAt
		status.BuildDuration = gen.buildDuration
		status.Monsters = gen.index.MonsterCount()
		status.Nicknames = gen.index.NicknameCount()
		status.ContestedNicknames = gen.index.ContestedNicknames()
		status.Prefixes = len(gen.index.allPrefixes)
	}

	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	if !s.lastAttempt.IsZero() {
		lastAttempt := s.lastAttempt
		status.LastAttempt = &lastAttempt
	}
	if s.lastErr != nil {
		status.LastError = s.lastErr.Error()
	}

	return status
}

// Find resolves a query with FindMonster against the active generation.
func (s *IndexService) Find(query string) (*Match, error) {
	return s.resolve(ModeFind, query, (*MonsterIndex).FindMonster)
}

// FindConstrained resolves a query with FindMonsterConstrained against the
// active generation.
func (s *IndexService) FindConstrained(query string) (*Match, error) {
	return s.resolve(ModeConstrained, query, (*MonsterIndex).FindMonsterConstrained)
}

func (s *IndexService) resolve(mode, query string, find func(*MonsterIndex, string) (*Match, error)) (*Match, error) {
	gen := s.current.Load()
	if gen == nil {
		return nil, ErrIndexNotReady
	}

	start := time.Now()
	key := mode + "\x00" + normalizeQuery(query)

	if gen.cache != nil {
		if cached, ok := gen.cache.Get(key); ok {
			metrics.QueryCacheHits.Inc()
			recordQuery(mode, cached.match, cached.err, start)
			return cached.match, cached.err
		}
		metrics.QueryCacheMisses.Inc()
	}

	match, err := find(gen.index, query)
	if gen.cache != nil {
		gen.cache.Add(key, cachedResult{match: match, err: err})
	}
	recordQuery(mode, match, err, start)
	return match, err
}

func recordQuery(mode string, match *Match, err error, start time.Time) {
	stage, outcome := "none", "matched"
	if match != nil {
		stage = string(match.Stage)
	}
	var noMatch *NoMatchError
	if errors.As(err, &noMatch) {
		outcome = string(noMatch.Kind)
	} else if err != nil {
		outcome = "error"
	}
	metrics.QueriesTotal.WithLabelValues(mode, stage, outcome).Inc()
	metrics.QueryDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}
