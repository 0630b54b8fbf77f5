package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrSigningDisabled is returned by GenerateToken on a validation-only service.
var ErrSigningDisabled = errors.New("auth: service holds no signing key")

// JWTConfig holds JWT configuration. Exactly one key source is used, in the
// order PrivateKeyPEM, PublicKeyPEM, Secret.
type JWTConfig struct {
	// Secret is an HS256 shared key.
	Secret string
	// PrivateKeyPEM signs and validates RS256 tokens.
	PrivateKeyPEM string
	// PublicKeyPEM validates RS256 tokens issued elsewhere.
	PublicKeyPEM string

	Issuer   string
	Audience string

	Expiration time.Duration
	// Leeway tolerates clock skew between issuer and this service.
	Leeway time.Duration
}

// JWTService issues and validates API-client bearer tokens.
type JWTService struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	parser    *jwt.Parser
	cfg       JWTConfig
}

func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{cfg: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA private key: %w", err)
		}
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodRS256, key, &key.PublicKey
	case cfg.PublicKeyPEM != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA public key: %w", err)
		}
		svc.method, svc.verifyKey = jwt.SigningMethodRS256, key
	case cfg.Secret != "":
		secret := []byte(cfg.Secret)
		svc.method, svc.signKey, svc.verifyKey = jwt.SigningMethodHS256, secret, secret
	default:
		return nil, errors.New("auth: jwt configuration requires PrivateKeyPEM, PublicKeyPEM or Secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{svc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	svc.parser = jwt.NewParser(opts...)

	return svc, nil
}

// GenerateToken issues a token for an API client with the given scopes.
func (s *JWTService) GenerateToken(clientID string, scopes []string) (string, error) {
	if s.signKey == nil {
		return "", ErrSigningDisabled
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.cfg.Issuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
		ClientID: clientID,
		Scopes:   scopes,
	}
	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm, expiry, issuer and audience.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.verifyKey, nil
	}); err != nil {
		return nil, fmt.Errorf("auth: invalid token: %w", err)
	}
	if claims.ClientID == "" {
		claims.ClientID = claims.Subject
	}
	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: read key file %q: %w", path, err)
	}
	return data, nil
}

// GenerateKeyPair returns a PEM-encoded 2048-bit RSA key pair for local
// issuers and tests.
func GenerateKeyPair() (privateKeyPEM, publicKeyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: generate RSA key: %w", err)
	}

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("auth: marshal public key: %w", err)
	}

	privateKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	publicKeyPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub})
	return privateKeyPEM, publicKeyPEM, nil
}
