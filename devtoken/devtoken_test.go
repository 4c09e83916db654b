package devtoken

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
)

func generateKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	return key
}

func encodePKCS8(t *testing.T, key any) []byte {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("marshaling key: %v", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
}

func TestParsePrivateKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := ParsePrivateKey(encodePKCS8(t, key))
	if err != nil {
		t.Fatalf("ParsePrivateKey: %v", err)
	}
	if !parsed.Equal(key) {
		t.Error("parsed key does not match")
	}
}

func TestParsePrivateKeyErrors(t *testing.T) {
	if _, err := ParsePrivateKey([]byte("not pem")); err == nil {
		t.Error("expected error for non-PEM input")
	}

	bad := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte("junk")})
	if _, err := ParsePrivateKey(bad); err == nil {
		t.Error("expected error for invalid DER")
	}

	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating rsa key: %v", err)
	}
	if _, err := ParsePrivateKey(encodePKCS8(t, rsaKey)); err == nil {
		t.Error("expected error for RSA key")
	}
}

func TestLoadPrivateKey(t *testing.T) {
	key := generateKey(t)
	path := filepath.Join(t.TempDir(), "AuthKey_ABC123.p8")
	if err := os.WriteFile(path, encodePKCS8(t, key), 0o600); err != nil {
		t.Fatalf("writing key: %v", err)
	}
	parsed, err := LoadPrivateKey(path)
	if err != nil {
		t.Fatalf("LoadPrivateKey: %v", err)
	}
	if !parsed.Equal(key) {
		t.Error("loaded key does not match")
	}
	if _, err := LoadPrivateKey(filepath.Join(t.TempDir(), "missing.p8")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSignClaims(t *testing.T) {
	key := generateKey(t)
	s, err := NewSigner(Config{TeamID: "TEAM123456", KeyID: "KEY1234567", PrivateKey: key, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	tok, err := s.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.TokenType != "Bearer" {
		t.Errorf("expected Bearer, got %s", tok.TokenType)
	}
	if !tok.Expiry.Equal(fixed.Add(time.Hour)) {
		t.Errorf("expected expiry %s, got %s", fixed.Add(time.Hour), tok.Expiry)
	}

	parsed, err := jwt.ParseSigned(tok.AccessToken, []jose.SignatureAlgorithm{jose.ES256})
	if err != nil {
		t.Fatalf("ParseSigned: %v", err)
	}
	if len(parsed.Headers) != 1 {
		t.Fatalf("expected 1 header, got %d", len(parsed.Headers))
	}
	if parsed.Headers[0].KeyID != "KEY1234567" {
		t.Errorf("expected kid KEY1234567, got %s", parsed.Headers[0].KeyID)
	}
	if typ := parsed.Headers[0].ExtraHeaders[jose.HeaderType]; typ != "JWT" {
		t.Errorf("expected typ JWT, got %v", typ)
	}

	var claims jwt.Claims
	if err := parsed.Claims(&key.PublicKey, &claims); err != nil {
		t.Fatalf("verifying claims: %v", err)
	}
	if claims.Issuer != "TEAM123456" {
		t.Errorf("expected issuer TEAM123456, got %s", claims.Issuer)
	}
	if !claims.IssuedAt.Time().Equal(fixed) {
		t.Errorf("expected iat %s, got %s", fixed, claims.IssuedAt.Time())
	}
	if !claims.Expiry.Time().Equal(fixed.Add(time.Hour)) {
		t.Errorf("expected exp %s, got %s", fixed.Add(time.Hour), claims.Expiry.Time())
	}

	other := generateKey(t)
	if err := parsed.Claims(&other.PublicKey, &claims); err == nil {
		t.Error("expected verification failure with a different key")
	}
}

func TestDefaultTTL(t *testing.T) {
	s, err := NewSigner(Config{TeamID: "T", KeyID: "K", PrivateKey: generateKey(t)})
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	_, expiry, err := s.Sign()
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !expiry.Equal(fixed.Add(DefaultTTL)) {
		t.Errorf("expected default ttl expiry, got %s", expiry)
	}
}

func TestConfigValidation(t *testing.T) {
	key := generateKey(t)
	p384, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing team", Config{KeyID: "K", PrivateKey: key}},
		{"missing key id", Config{TeamID: "T", PrivateKey: key}},
		{"missing key", Config{TeamID: "T", KeyID: "K"}},
		{"wrong curve", Config{TeamID: "T", KeyID: "K", PrivateKey: p384}},
		{"negative ttl", Config{TeamID: "T", KeyID: "K", PrivateKey: key, TTL: -time.Second}},
		{"ttl too long", Config{TeamID: "T", KeyID: "K", PrivateKey: key, TTL: MaxTTL + time.Hour}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSigner(tt.cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestNewSourceReuses(t *testing.T) {
	src, err := NewSource(Config{TeamID: "T", KeyID: "K", PrivateKey: generateKey(t), TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	first, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	second, err := src.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if first.AccessToken != second.AccessToken {
		t.Error("expected the cached token to be reused")
	}
}

func TestStatic(t *testing.T) {
	tok, err := Static("abc").Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if tok.AccessToken != "abc" || tok.Type() != "Bearer" {
		t.Errorf("unexpected token %+v", tok)
	}
}
