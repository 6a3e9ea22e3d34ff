package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/mirae-store/mirae-admin/internal/domain/errors"
	"github.com/mirae-store/mirae-admin/internal/domain/model"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
)

// StoreAuthenticator verifies credentials and identities against the store.
type StoreAuthenticator interface {
	Login(ctx context.Context, email, password string) (string, *model.Admin, error)
	Profile(ctx context.Context) (*model.Admin, error)
}

// AuthUseCase handles admin sign-in and session tokens.
type AuthUseCase struct {
	store  StoreAuthenticator
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(store StoreAuthenticator, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{store: store, tokens: strategy}
}

// Authenticate signs the admin in at the store, checks the role and returns a session token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.Admin, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	storeToken, _, err := u.store.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	admin, err := u.store.Profile(pkgAuth.WithStoreToken(ctx, storeToken))
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnauthorized) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load profile: %w", err)
	}
	if admin.Role != model.RoleAdmin {
		return nil, "", domainErrors.ErrForbidden
	}

	token, err := u.tokens.IssueToken(pkgAuth.Session{AdminID: admin.ID, StoreToken: storeToken})
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

// ParseToken extracts the principal from a session token.
func (u *AuthUseCase) ParseToken(token string) (*model.Principal, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	session, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &model.Principal{AdminID: session.AdminID, StoreToken: session.StoreToken}, nil
}

// Profile returns the signed-in admin. The store token must already be on ctx.
func (u *AuthUseCase) Profile(ctx context.Context) (*model.Admin, error) {
	admin, err := u.store.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if admin.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	return admin, nil
}
