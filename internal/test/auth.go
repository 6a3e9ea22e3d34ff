package test

import (
	"context"

	"github.com/mirae-store/mirae-admin/internal/domain/model"
	pkgAuth "github.com/mirae-store/mirae-admin/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(pkgAuth.Session) (string, error)
	ParseFn func(string) (pkgAuth.Session, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(session pkgAuth.Session) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(session)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Session{AdminID: "admin-1", StoreToken: "store-token"}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// StoreAuthStub simulates store login and profile endpoints.
type StoreAuthStub struct {
	LoginFn   func(context.Context, string, string) (string, *model.Admin, error)
	ProfileFn func(context.Context) (*model.Admin, error)
}

// Login returns a fixed store token unless overridden.
func (s StoreAuthStub) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return "store-token", nil, nil
}

// Profile returns an admin unless overridden.
func (s StoreAuthStub) Profile(ctx context.Context) (*model.Admin, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx)
	}
	return &model.Admin{ID: "admin-1", Name: "Admin", Email: "admin@mirae.in", Role: model.RoleAdmin}, nil
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Principal *model.Principal
	Err       error
	ParseFn   func(string) (*model.Principal, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (*model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Principal != nil {
		return s.Principal, nil
	}
	return &model.Principal{AdminID: "admin-1", StoreToken: "store-token"}, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
