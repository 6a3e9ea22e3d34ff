package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

var encoding = base64.RawURLEncoding

// HMACStrategy implements session token creation/verification using HMAC signatures.
// The embedded store token is sealed before signing.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	sealer *sealer
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) (*HMACStrategy, error) {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	s, err := newSealer([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now, sealer: s}, nil
}

// IssueToken generates a signed session token. ExpiresAt is set from the configured TTL.
func (s *HMACStrategy) IssueToken(session Session) (string, error) {
	if session.AdminID == "" || session.StoreToken == "" {
		return "", fmt.Errorf("issue token: admin id and store token are required")
	}
	expires := s.now().Add(s.ttl).Unix()
	adminID := encoding.EncodeToString([]byte(session.AdminID))
	sealed, err := s.sealer.seal([]byte(session.StoreToken), []byte(adminID))
	if err != nil {
		return "", fmt.Errorf("seal store token: %w", err)
	}
	payload := fmt.Sprintf("%s:%s:%d", adminID, encoding.EncodeToString(sealed), expires)
	sig := s.sign(payload)
	token := fmt.Sprintf("%s:%s", payload, sig)
	return encoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the session it carries.
func (s *HMACStrategy) ParseToken(token string) (Session, error) {
	raw, err := encoding.DecodeString(token)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return Session{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[3])) {
		return Session{}, ErrInvalidToken
	}

	adminID, err := encoding.DecodeString(parts[0])
	if err != nil || len(adminID) == 0 {
		return Session{}, ErrInvalidToken
	}

	sealed, err := encoding.DecodeString(parts[1])
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	expiresAt := time.Unix(expires, 0)
	if expiresAt.Before(s.now()) {
		return Session{}, ErrInvalidToken
	}

	storeToken, err := s.sealer.open(sealed, []byte(parts[0]))
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	return Session{AdminID: string(adminID), StoreToken: string(storeToken), ExpiresAt: expiresAt}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

// TTL returns the lifetime of issued tokens.
func (s *HMACStrategy) TTL() time.Duration {
	return s.ttl
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return encoding.EncodeToString(mac.Sum(nil))
}
