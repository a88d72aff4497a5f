package auth

import (
	"context"
	"fmt"

	"campaign-server/internal/shared/config"
)

// StubProvider signs every login in as a fixed development user without
// leaving the server. LoginURL points straight at our own callback.
type StubProvider struct{}

func NewStubProvider() *StubProvider {
	return &StubProvider{}
}

func (p *StubProvider) Name() string {
	return "stub"
}

func (p *StubProvider) LoginURL(state string) string {
	cfg := config.GlobalConfig
	return fmt.Sprintf("%s/auth/callback?code=stub&state=%s", cfg.Server.URL, state)
}

func (p *StubProvider) Authenticate(ctx context.Context, code string) (*Identity, error) {
	if code != "stub" {
		return nil, fmt.Errorf("stub provider received unexpected code %q", code)
	}

	return &Identity{
		Subject: "stub-user",
		Email:   "gm@localhost",
		Name:    "Game Master",
	}, nil
}
