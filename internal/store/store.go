// Package store is the single authority over the farm's entity graph. All
// mutations go through it; it recomputes every derived field on write,
// tracks a dirty flag against the persisted snapshot, and notifies open
// dashboard tabs through the broadcast bus after each successful save.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/broadcast"
	"github.com/quackworks/duckfarm/internal/domain/derive"
	"github.com/quackworks/duckfarm/internal/domain/models"
	"github.com/quackworks/duckfarm/internal/snapshot"
)

// ErrNotFound indicates the referenced entity does not exist.
var ErrNotFound = errors.New("store: entity not found")

// Store owns the in-memory state and its persistence lifecycle.
// Single-writer by design: a mutex serializes mutations, matching the
// one-operator usage model.
type Store struct {
	mu sync.RWMutex

	state         models.AppState
	dirty         bool
	authenticated bool
	activeTab     string

	snaps  snapshot.Store
	bus    *broadcast.Bus
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// New wires a store over the given snapshot backend and notification bus.
func New(snaps snapshot.Store, bus *broadcast.Bus, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:  models.DefaultState(),
		snaps:  snaps,
		bus:    bus,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// State returns a deep copy of the current entity graph.
func (s *Store) State() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

// IsDirty reports whether in-memory state has diverged from the persisted
// snapshot.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// SaveState serializes the entity graph to the snapshot store and, on
// success, clears the dirty flag and broadcasts a state-change notification.
// Persistence failures leave the in-memory state fully usable.
func (s *Store) SaveState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := s.snaps.Put(ctx, snapshot.KeyState, data); err != nil {
		s.logger.Error("state save failed, continuing in memory", zap.Error(err))
		return err
	}

	s.dirty = false
	s.publish(broadcast.TypeStateChange)
	s.logger.Debug("state saved", zap.Int("bytes", len(data)))
	return nil
}

// LoadState replaces in-memory state with the persisted snapshot, reviving
// date fields and rebuilding the monthly aggregate from the weekly rows. A
// missing snapshot leaves the default empty state in place. The auth flag
// and active tab are read from their own keys.
func (s *Store) LoadState(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.snaps.Get(ctx, snapshot.KeyState)
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		s.logger.Info("no persisted state, starting fresh")
	case err != nil:
		s.logger.Error("state load failed, continuing in memory", zap.Error(err))
		return err
	default:
		var state models.AppState
		if err := json.Unmarshal(data, &state); err != nil {
			s.logger.Error("persisted state unreadable, continuing in memory", zap.Error(err))
			return fmt.Errorf("decode state: %w", err)
		}
		s.state = normalizeState(state, s.now())
		s.dirty = false
	}

	s.loadAuthFlag(ctx)
	s.loadActiveTab(ctx)
	return nil
}

// GetFullState exports the entire entity graph for backup.
func (s *Store) GetFullState() models.AppState {
	return s.State()
}

// LoadFullState imports a full entity graph (backup restore), applying the
// same date-revival and monthly-recompute path as LoadState. The import is
// in-memory until the next save.
func (s *Store) LoadFullState(state models.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = normalizeState(state, s.now())
	s.dirty = true
}

// ResetState replaces all state with a fresh default and persists it
// immediately.
func (s *Store) ResetState(ctx context.Context) error {
	s.mu.Lock()
	s.state = models.DefaultState()
	s.dirty = true
	s.mu.Unlock()

	return s.SaveState(ctx)
}

// markDirtyLocked must be called with the write lock held.
func (s *Store) markDirtyLocked() {
	s.dirty = true
}

func (s *Store) publish(t broadcast.MessageType) {
	if s.bus != nil {
		s.bus.Publish(broadcast.Message{Type: t})
	}
}

func (s *Store) loadAuthFlag(ctx context.Context) {
	data, err := s.snaps.Get(ctx, snapshot.KeyAuth)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNoSnapshot) {
			s.logger.Warn("auth flag load failed", zap.Error(err))
		}
		return
	}
	s.authenticated = string(data) == "true"
}

func (s *Store) loadActiveTab(ctx context.Context) {
	data, err := s.snaps.Get(ctx, snapshot.KeyActiveTab)
	if err != nil {
		if !errors.Is(err, snapshot.ErrNoSnapshot) {
			s.logger.Warn("active tab load failed", zap.Error(err))
		}
		return
	}
	s.activeTab = string(data)
}

// normalizeState revives an imported or loaded graph: nil collections become
// empty, every duck's derived triplet is refreshed against the current
// clock, weekly totals are recomputed, and the monthly aggregate is rebuilt
// from scratch. Any persisted monthly snapshot is discarded as
// non-authoritative.
func normalizeState(state models.AppState, now time.Time) models.AppState {
	if state.Ducks == nil {
		state.Ducks = []models.Duck{}
	}
	if state.DailyProduction == nil {
		state.DailyProduction = []models.DailyProduction{}
	}
	if state.WeeklyProduction == nil {
		state.WeeklyProduction = []models.WeeklyProduction{}
	}
	if state.Feeds == nil {
		state.Feeds = []models.Feed{}
	}
	if state.Transactions == nil {
		state.Transactions = []models.Transaction{}
	}
	if state.DeathRecords == nil {
		state.DeathRecords = []models.DeathRecord{}
	}

	for i := range state.Ducks {
		derive.RefreshDuck(&state.Ducks[i], now)
	}
	for i := range state.WeeklyProduction {
		derive.RefreshWeekly(&state.WeeklyProduction[i])
	}
	state.MonthlyProduction = derive.RebuildMonthly(state.WeeklyProduction)

	return state
}

func copyState(state models.AppState) models.AppState {
	out := state
	out.Ducks = append([]models.Duck(nil), state.Ducks...)
	out.WeeklyProduction = append([]models.WeeklyProduction(nil), state.WeeklyProduction...)
	out.MonthlyProduction = append([]models.MonthlyProduction(nil), state.MonthlyProduction...)
	out.Feeds = append([]models.Feed(nil), state.Feeds...)
	out.Transactions = append([]models.Transaction(nil), state.Transactions...)
	out.DeathRecords = append([]models.DeathRecord(nil), state.DeathRecords...)

	out.DailyProduction = make([]models.DailyProduction, len(state.DailyProduction))
	for i, d := range state.DailyProduction {
		cp := d
		cp.CageEggs = make(map[string]int, len(d.CageEggs))
		for k, v := range d.CageEggs {
			cp.CageEggs[k] = v
		}
		out.DailyProduction[i] = cp
	}

	return out
}
