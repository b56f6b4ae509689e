package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/quackworks/duckfarm/internal/broadcast"
	"github.com/quackworks/duckfarm/internal/snapshot"
)

// Login checks the supplied credentials against the company profile. When no
// credentials have ever been configured, any input authenticates. Returns
// whether authentication succeeded; it never errors. On success the auth
// flag is persisted to its own key and an auth-change notification is
// broadcast, so other tabs pick it up without a full state reload.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := s.state.CompanyInfo
	if info.HasCredentials() && (username != info.Username || password != info.Password) {
		return false
	}

	s.authenticated = true
	s.persistAuthFlag(ctx, "true")
	s.publish(broadcast.TypeAuthChange)
	return true
}

// Logout clears the auth flag and broadcasts the change.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.persistAuthFlag(ctx, "false")
	s.publish(broadcast.TypeAuthChange)
}

// IsAuthenticated reports the current auth flag.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetActiveTab persists the last selected dashboard tab under its own key
// and broadcasts a tab-change, sparing other tabs a full state reload for a
// trivial preference change.
func (s *Store) SetActiveTab(ctx context.Context, tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeTab = tab
	if err := s.snaps.Put(ctx, snapshot.KeyActiveTab, []byte(tab)); err != nil {
		s.logger.Warn("active tab save failed", zap.Error(err))
	}
	s.publish(broadcast.TypeTabChange)
}

// ActiveTab reports the last selected dashboard tab.
func (s *Store) ActiveTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

func (s *Store) persistAuthFlag(ctx context.Context, value string) {
	if err := s.snaps.Put(ctx, snapshot.KeyAuth, []byte(value)); err != nil {
		s.logger.Warn("auth flag save failed", zap.Error(err))
	}
}
