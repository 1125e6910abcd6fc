package service

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/syedfahimdev/omni-admin/internal/auth/domain"
	"github.com/syedfahimdev/omni-admin/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	GenID *snowflake.Node
}

// Service checks the shared operator secret and tracks live sessions in
// memory. No hashing, rate limiting, or expiry: a single shared secret.
type Service struct {
	adminPassword string
	log           *zap.Logger
	genID         *snowflake.Node

	mu       sync.Mutex
	sessions map[string]domain.Session
}

func New(p Params) domain.Service {
	return &Service{
		adminPassword: p.Cfg.AdminPassword,
		log:           p.Log.Named("auth.service"),
		genID:         p.GenID,
		sessions:      make(map[string]domain.Session),
	}
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResult, error) {
	_ = ctx
	if s.adminPassword == "" {
		s.log.Error("ADMIN_PASSWORD not configured on server")
		return domain.LoginResult{}, domain.ErrPasswordNotConfigured
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.adminPassword)) != 1 {
		return domain.LoginResult{}, domain.ErrInvalidPassword
	}

	session := domain.Session{
		ID:        s.genID.Generate(),
		CreatedAt: time.Now().UTC(),
	}
	token := uuid.NewString()

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	s.log.Info("operator logged in", zap.String("session_id", session.ID.String()))
	return domain.LoginResult{RawToken: token, Session: session}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) {
	_ = ctx
	s.mu.Lock()
	delete(s.sessions, rawToken)
	s.mu.Unlock()
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (domain.Session, bool) {
	_ = ctx
	s.mu.Lock()
	session, ok := s.sessions[rawToken]
	s.mu.Unlock()
	return session, ok
}
