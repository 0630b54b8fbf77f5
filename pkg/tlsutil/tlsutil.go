// Package tlsutil loads TLS trust material for outbound partner connections
// and the optional inbound HTTPS listener.
package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavlo-v-chernykh/keystore-go/v4"
)

// ErrEmptyTrustStore is returned when a trust store holds no certificates.
var ErrEmptyTrustStore = errors.New("tlsutil: trust store contains no trusted certificates")

// ServerTLSConfig loads a server key pair for the HTTPS listener.
func ServerTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

// ClientTLSConfig returns a client TLS config trusting only the given roots.
// A nil pool falls back to the system roots.
func ClientTLSConfig(roots *x509.CertPool) *tls.Config {
	return &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}
}

// LoadTrustStore reads trusted certificates from path. Files ending in .pem,
// .crt or .cer are parsed as PEM bundles; anything else is opened as a Java
// keystore (JKS) with the given password.
func LoadTrustStore(path, password string) (*x509.CertPool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pem", ".crt", ".cer":
		return loadPEM(path)
	default:
		return loadJKS(path, password)
	}
}

func loadPEM(path string) (*x509.CertPool, error) {
	caPEM, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("tlsutil: failed to parse CA certificate from %s", path)
	}
	return pool, nil
}

func loadJKS(path, password string) (*x509.CertPool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: open keystore: %w", err)
	}
	defer f.Close()

	ks := keystore.New()
	if err := ks.Load(f, []byte(password)); err != nil {
		return nil, fmt.Errorf("tlsutil: load keystore %s: %w", path, err)
	}

	pool := x509.NewCertPool()
	added := 0
	for _, alias := range ks.Aliases() {
		if !ks.IsTrustedCertificateEntry(alias) {
			continue
		}
		entry, err := ks.GetTrustedCertificateEntry(alias)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: keystore entry %q: %w", alias, err)
		}
		cert, err := x509.ParseCertificate(entry.Certificate.Content)
		if err != nil {
			return nil, fmt.Errorf("tlsutil: parse keystore certificate %q: %w", alias, err)
		}
		pool.AddCert(cert)
		added++
	}
	if added == 0 {
		return nil, ErrEmptyTrustStore
	}
	return pool, nil
}
