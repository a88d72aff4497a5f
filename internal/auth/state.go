package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// stateManager tracks one-time CSRF state tokens issued for login redirects.
type stateManager struct {
	states map[string]stateEntry
	mutex  sync.Mutex
}

type stateEntry struct {
	CreatedAt time.Time
	UserAgent string
}

var globalStateManager = newStateManager()

func init() {
	go globalStateManager.startCleanup()
}

func newStateManager() *stateManager {
	return &stateManager{
		states: make(map[string]stateEntry),
	}
}

func (sm *stateManager) generate(userAgent string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}

	state := base64.URLEncoding.EncodeToString(b)

	sm.mutex.Lock()
	sm.states[state] = stateEntry{
		CreatedAt: time.Now(),
		UserAgent: userAgent,
	}
	sm.mutex.Unlock()

	return state, nil
}

// validate checks and consumes a state token. Tokens are one-time use.
func (sm *stateManager) validate(state, userAgent string) error {
	logger := slog.With("component", "auth_state", "operation", "validate")

	if state == "" {
		return fmt.Errorf("state token is required")
	}

	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	entry, exists := sm.states[state]
	if !exists {
		return fmt.Errorf("invalid or expired state token")
	}
	delete(sm.states, state)

	if time.Since(entry.CreatedAt) > stateTTL {
		return fmt.Errorf("state token has expired")
	}

	if entry.UserAgent != userAgent {
		logger.Warn("State token user agent mismatch",
			"stored_user_agent", entry.UserAgent,
			"received_user_agent", userAgent)
	}

	return nil
}

func (sm *stateManager) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sm.mutex.Lock()
		now := time.Now()
		for state, entry := range sm.states {
			if now.Sub(entry.CreatedAt) > stateTTL {
				delete(sm.states, state)
			}
		}
		sm.mutex.Unlock()
	}
}

func GenerateLoginState(userAgent string) (string, error) {
	return globalStateManager.generate(userAgent)
}

func ValidateLoginState(state, userAgent string) error {
	return globalStateManager.validate(state, userAgent)
}
