// Package prefs is the local key-value preference store. It only carries
// the onboarding-completed and last-known-user flags; nothing here is
// part of the synchronized schema.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type data struct {
	OnboardingCompleted map[string]bool `json:"onboardingCompleted"`
	LastKnownUserID     string          `json:"lastKnownUserId"`
}

type Store struct {
	mu   sync.Mutex
	path string
	data data
}

func NewStore(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: data{OnboardingCompleted: map[string]bool{}},
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt prefs file resets to defaults rather than blocking
		// startup.
		s.data = data{OnboardingCompleted: map[string]bool{}}
	}
	if s.data.OnboardingCompleted == nil {
		s.data.OnboardingCompleted = map[string]bool{}
	}
	return s, nil
}

func (s *Store) OnboardingCompleted(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.OnboardingCompleted[userID]
}

func (s *Store) SetOnboardingCompleted(userID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.OnboardingCompleted[userID] = completed
	return s.flushLocked()
}

func (s *Store) LastKnownUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.LastKnownUserID
}

func (s *Store) SetLastKnownUserID(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.LastKnownUserID = userID
	return s.flushLocked()
}

// flushLocked writes through a temp file so a crash never leaves a
// half-written prefs file.
func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
