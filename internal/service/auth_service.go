package service

import (
	"context"
	"errors"

	"notes-repository-be/internal/dto"
	"notes-repository-be/internal/session"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*dto.SessionResponse, error)
}

type authService struct {
	sessions *session.Manager
}

func NewAuthService(sessions *session.Manager) IAuthService {
	return &authService{sessions: sessions}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	identity, err := s.sessions.SignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, err
	}
	return toUserResponse(identity), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	sess, err := s.sessions.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      *toUserResponse(sess.Identity),
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.SignOut(ctx, token)
}

// Session never fails for a missing or dead token; it reports a nil user.
func (s *authService) Session(ctx context.Context, token string) (*dto.SessionResponse, error) {
	if token == "" {
		return &dto.SessionResponse{}, nil
	}
	identity, err := s.sessions.Resolve(ctx, token)
	if errors.Is(err, session.ErrNoSession) {
		return &dto.SessionResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{User: toUserResponse(identity)}, nil
}

func toUserResponse(identity session.Identity) *dto.UserResponse {
	return &dto.UserResponse{
		Id:       identity.UserID,
		Email:    identity.Email,
		FullName: identity.FullName,
	}
}
