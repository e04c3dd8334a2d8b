package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mio254/spacer/internal/domain"
	"github.com/Mio254/spacer/internal/repository"
	"github.com/Mio254/spacer/pkg/apperror"
	"github.com/Mio254/spacer/pkg/auth"
)

var errBadCredentials = apperror.New(401, "bad_credentials", "invalid email or password")

type AuthSvc struct {
	users  *repository.UserRepo
	tokens *auth.Tokens
}

func NewAuthSvc(users *repository.UserRepo, tokens *auth.Tokens) *AuthSvc {
	return &AuthSvc{users: users, tokens: tokens}
}

func (s *AuthSvc) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, PasswordHash: string(hash), Name: name, Role: domain.RoleUser}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", errBadCredentials
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", errBadCredentials
	}
	access, err := s.tokens.Access(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.tokens.Refresh(u.ID, string(u.Role), u.Email)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

func (s *AuthSvc) ListUsers(ctx context.Context, actor domain.Actor, page, size int32) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	return s.users.List(ctx, page, size)
}
