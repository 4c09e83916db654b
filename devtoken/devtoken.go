// Package devtoken signs the ES256 developer tokens the API expects as its
// bearer credential.
package devtoken

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"golang.org/x/oauth2"
)

const (
	// DefaultTTL is the token lifetime when Config.TTL is zero.
	DefaultTTL = 12 * time.Hour
	// MaxTTL is the longest lifetime the API accepts.
	MaxTTL = 180 * 24 * time.Hour
)

// Config identifies the signing key.
type Config struct {
	TeamID     string
	KeyID      string
	PrivateKey *ecdsa.PrivateKey
	TTL        time.Duration
}

func (c Config) validate() error {
	var errs []string
	if strings.TrimSpace(c.TeamID) == "" {
		errs = append(errs, "team id is required")
	}
	if strings.TrimSpace(c.KeyID) == "" {
		errs = append(errs, "key id is required")
	}
	if c.PrivateKey == nil {
		errs = append(errs, "private key is required")
	} else if c.PrivateKey.Curve != elliptic.P256() {
		errs = append(errs, "private key must use the P-256 curve")
	}
	if c.TTL < 0 || c.TTL > MaxTTL {
		errs = append(errs, fmt.Sprintf("ttl must be between 0 and %s", MaxTTL))
	}
	if len(errs) > 0 {
		return fmt.Errorf("devtoken: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ParsePrivateKey decodes a PEM encoded PKCS#8 EC key, the format of the
// .p8 files issued for MusicKit.
func ParsePrivateKey(data []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("devtoken: no PEM block found")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("devtoken: parsing private key: %w", err)
	}
	key, ok := parsed.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("devtoken: expected an EC private key, got %T", parsed)
	}
	return key, nil
}

// LoadPrivateKey reads and parses a .p8 key file.
func LoadPrivateKey(path string) (*ecdsa.PrivateKey, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path from operator config
	if err != nil {
		return nil, fmt.Errorf("devtoken: reading key file: %w", err)
	}
	return ParsePrivateKey(data)
}

// Signer mints a fresh token on every call to Token.
type Signer struct {
	cfg    Config
	signer jose.Signer
	now    func() time.Time
}

// NewSigner validates cfg and prepares an ES256 signer.
func NewSigner(cfg Config) (*Signer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}

	key := jose.SigningKey{
		Algorithm: jose.ES256,
		Key:       jose.JSONWebKey{Key: cfg.PrivateKey, KeyID: cfg.KeyID},
	}
	signer, err := jose.NewSigner(key, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return nil, fmt.Errorf("devtoken: creating signer: %w", err)
	}
	return &Signer{cfg: cfg, signer: signer, now: time.Now}, nil
}

// Sign returns the compact serialized token and its expiry.
func (s *Signer) Sign() (string, time.Time, error) {
	issued := s.now().Truncate(time.Second)
	expiry := issued.Add(s.cfg.TTL)
	claims := jwt.Claims{
		Issuer:   s.cfg.TeamID,
		IssuedAt: jwt.NewNumericDate(issued),
		Expiry:   jwt.NewNumericDate(expiry),
	}
	raw, err := jwt.Signed(s.signer).Claims(claims).Serialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("devtoken: signing: %w", err)
	}
	return raw, expiry, nil
}

// Token implements oauth2.TokenSource.
func (s *Signer) Token() (*oauth2.Token, error) {
	raw, expiry, err := s.Sign()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: raw, TokenType: "Bearer", Expiry: expiry}, nil
}

// NewSource returns a token source that signs once per validity window.
func NewSource(cfg Config) (oauth2.TokenSource, error) {
	s, err := NewSigner(cfg)
	if err != nil {
		return nil, err
	}
	return oauth2.ReuseTokenSource(nil, s), nil
}

// Static wraps an already issued developer token.
func Static(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
