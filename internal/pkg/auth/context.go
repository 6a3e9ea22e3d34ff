package auth

import "context"

type storeTokenKey struct{}

// WithStoreToken returns a context carrying the store API bearer token.
func WithStoreToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, storeTokenKey{}, token)
}

// StoreToken extracts the bearer token placed by WithStoreToken.
func StoreToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(storeTokenKey{}).(string)
	return token, ok && token != ""
}
