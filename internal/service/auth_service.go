package service

import (
	"context"
	"errors"
	"time"

	"go-store-console/internal/model"
	"go-store-console/internal/repository"
	"go-store-console/internal/session"
	"go-store-console/internal/view"
	"go-store-console/internal/ws"
	"go-store-console/pkg/jwt"
	"go-store-console/pkg/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session expired or logged out")
	ErrTokenFailed     = errors.New("failed to generate token")
)

// StoreClient is a store API client bound to one upstream login
type StoreClient interface {
	StoreAPI
	Login(ctx context.Context, creds model.Credentials) (*model.APIResult, error)
}

type StoreClientFactory func() StoreClient

type AuthService interface {
	Login(ctx context.Context, creds model.Credentials) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	ValidateToken(tokenString string) (ConsoleService, *jwt.Claims, error)
	SweepExpired() int
	Shutdown()
}

type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
}

type authService struct {
	newClient StoreClientFactory
	signer    *jwt.Signer
	consoles  *session.Registry[ConsoleService]
	journal   repository.ActivityRepository
	wsHub     *ws.Hub
	log       *zap.Logger
}

// NewAuthService wires console sessions. hub may be nil, consoles then render nowhere.
func NewAuthService(newClient StoreClientFactory, signer *jwt.Signer, journal repository.ActivityRepository, hub *ws.Hub, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{
		newClient: newClient,
		signer:    signer,
		consoles:  session.NewRegistry[ConsoleService](),
		journal:   journal,
		wsHub:     hub,
		log:       log,
	}
}

// Login signs in upstream and opens a console with its own store API session
func (s *authService) Login(ctx context.Context, creds model.Credentials) (*LoginResponse, error) {
	// 1. Validate before touching the network
	if err := validator.Check(creds); err != nil {
		return nil, err
	}

	// 2. Upstream login; the client keeps the session cookie
	client := s.newClient()
	result, err := client.Login(ctx, creds)
	if err != nil {
		s.log.Info("login rejected", zap.String("username", creds.Username), zap.Error(err))
		return nil, err
	}

	// 3. Console token
	sessionID := uuid.New()
	token, err := s.signer.GenerateToken(sessionID, creds.Username)
	if err != nil {
		return nil, ErrTokenFailed
	}

	// 4. Console with the initial loads done
	var renderer view.Renderer = view.NopRenderer{}
	if s.wsHub != nil {
		renderer = ws.NewSessionRenderer(s.wsHub, sessionID)
	}
	console := NewConsoleService(ConsoleOptions{
		SessionID: sessionID,
		Actor:     creds.Username,
		API:       client,
		Renderer:  renderer,
		Journal:   s.journal,
		Logger:    s.log,
	})
	console.Start(ctx)
	s.consoles.Put(sessionID, console, time.Now().Add(s.signer.TTL()))

	s.record(sessionID, creds.Username)
	s.log.Info("console session opened",
		zap.String("session_id", sessionID.String()), zap.String("username", creds.Username))

	return &LoginResponse{
		Token:     token,
		SessionID: sessionID,
		Username:  creds.Username,
		Message:   result.Message,
	}, nil
}

// Logout closes the console. An upstream failure is logged only, the operator still leaves.
func (s *authService) Logout(ctx context.Context, sessionID uuid.UUID) error {
	console, ok := s.consoles.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	if err := console.Logout(ctx); err != nil {
		s.log.Warn("upstream logout failed", zap.String("session_id", sessionID.String()), zap.Error(err))
	}
	if s.wsHub != nil {
		s.wsHub.Disconnect(sessionID)
	}
	s.consoles.Remove(sessionID)
	return nil
}

func (s *authService) ValidateToken(tokenString string) (ConsoleService, *jwt.Claims, error) {
	claims, err := s.signer.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}

	console, ok := s.consoles.Get(claims.SessionID)
	if !ok {
		return nil, nil, ErrSessionNotFound
	}
	return console, claims, nil
}

// SweepExpired closes consoles whose token has expired without a logout
func (s *authService) SweepExpired() int {
	expired := s.consoles.Sweep()
	for _, id := range expired {
		if s.wsHub != nil {
			s.wsHub.Disconnect(id)
		}
		s.log.Info("console session expired", zap.String("session_id", id.String()))
	}
	return len(expired)
}

func (s *authService) Shutdown() {
	s.consoles.CloseAll()
}

func (s *authService) record(sessionID uuid.UUID, username string) {
	if s.journal == nil {
		return
	}
	entry := &model.ActivityEntry{SessionID: sessionID, Actor: username, Action: model.ActivityLogin}
	entry.CreatedBy = username
	if err := s.journal.Record(entry); err != nil {
		s.log.Error("failed to record activity", zap.String("action", string(model.ActivityLogin)), zap.Error(err))
	}
}
