package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Session is one authenticated operator session. Sessions live in process
// memory only and never expire on their own; logout or a restart ends them.
type Session struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

type LoginRequest struct {
	Password string
}

type LoginResult struct {
	RawToken string
	Session  Session
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, rawToken string)
	Authenticate(ctx context.Context, rawToken string) (Session, bool)
}

var (
	// ErrPasswordNotConfigured means ADMIN_PASSWORD is unset on the server.
	// This is surfaced to the operator, never silently allowed.
	ErrPasswordNotConfigured = errors.New("password_not_configured")
	ErrInvalidPassword       = errors.New("invalid_password")
)
