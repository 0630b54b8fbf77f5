// Package crypto encrypts sensitive partner fields with the partner's public key.
package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"github.com/bibbank/leapneo/internal/domain/port"
)

var (
	_ port.FieldEncryptor = (*RSAEncryptor)(nil)
	_ port.FieldEncryptor = PassthroughEncryptor{}
)

// RSAEncryptor encrypts with RSA PKCS#1 v1.5 and encodes the result as
// standard base64.
type RSAEncryptor struct {
	key *rsa.PublicKey
}

// NewRSAEncryptor wraps an RSA public key.
func NewRSAEncryptor(key *rsa.PublicKey) (*RSAEncryptor, error) {
	if key == nil {
		return nil, errors.New("crypto: nil public key")
	}
	return &RSAEncryptor{key: key}, nil
}

// LoadRSAEncryptor reads a PEM certificate or public key from path.
func LoadRSAEncryptor(path string) (*RSAEncryptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("crypto: read certificate: %w", err)
	}
	key, err := ParsePublicKey(data)
	if err != nil {
		return nil, err
	}
	return NewRSAEncryptor(key)
}

// ParsePublicKey extracts an RSA public key from a PEM CERTIFICATE, PUBLIC KEY
// or RSA PUBLIC KEY block.
func ParsePublicKey(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("crypto: failed to decode PEM block")
	}

	var pub any
	switch block.Type {
	case "CERTIFICATE":
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("crypto: parse certificate: %w", err)
		}
		pub = cert.PublicKey
	case "PUBLIC KEY":
		key, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("crypto: parse public key: %w", err)
		}
		pub = key
	case "RSA PUBLIC KEY":
		key, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("crypto: parse rsa public key: %w", err)
		}
		pub = key
	default:
		return nil, fmt.Errorf("crypto: unsupported PEM block %q", block.Type)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("crypto: certificate does not contain an RSA public key")
	}
	return rsaKey, nil
}

// Encrypt returns base64(RSA-PKCS1v15(plaintext)).
func (e *RSAEncryptor) Encrypt(plaintext string) (string, error) {
	out, err := rsa.EncryptPKCS1v15(rand.Reader, e.key, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("crypto: encrypt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// PassthroughEncryptor returns its input. It stands in for partners whose
// field encryption is switched off.
type PassthroughEncryptor struct{}

func (PassthroughEncryptor) Encrypt(plaintext string) (string, error) {
	return plaintext, nil
}
