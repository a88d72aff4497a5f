package auth

import (
	"context"
	"fmt"

	"campaign-server/internal/shared/config"
)

// Provider abstracts the login backend so the rest of the server never
// cares whether a real identity provider is wired up. The stub provider
// keeps local development working without OAuth credentials.
type Provider interface {
	Name() string
	LoginURL(state string) string
	Authenticate(ctx context.Context, code string) (*Identity, error)
}

func NewProvider() (Provider, error) {
	cfg := config.GlobalConfig.Auth

	switch cfg.Provider {
	case "stub":
		return NewStubProvider(), nil
	case "google":
		return NewGoogleProvider(), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}
