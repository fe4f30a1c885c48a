package sheets

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
)

// ServiceAccount holds the fields of a Google service-account JSON key that
// the token exchange needs. The parsed RSA key is kept alongside so signing
// does not re-parse the PEM on every refresh.
type ServiceAccount struct {
	ClientEmail  string `json:"client_email"`
	PrivateKey   string `json:"private_key"`
	PrivateKeyID string `json:"private_key_id"`
	TokenURI     string `json:"token_uri"`
	ProjectID    string `json:"project_id"`

	key *rsa.PrivateKey
}

// LoadServiceAccount reads and parses a service-account key file.
func LoadServiceAccount(path string) (ServiceAccount, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - key path comes from config
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return ParseServiceAccount(data)
}

// ParseServiceAccount parses the JSON key material and its embedded PKCS#8
// RSA private key.
func ParseServiceAccount(data []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return ServiceAccount{}, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if sa.ClientEmail == "" {
		return ServiceAccount{}, fmt.Errorf("credentials missing client_email")
	}
	if sa.TokenURI == "" {
		return ServiceAccount{}, fmt.Errorf("credentials missing token_uri")
	}

	block, _ := pem.Decode([]byte(sa.PrivateKey))
	if block == nil {
		return ServiceAccount{}, fmt.Errorf("credentials private_key is not PEM")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return ServiceAccount{}, fmt.Errorf("failed to parse private key: %w", err)
	}
	rsaKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return ServiceAccount{}, fmt.Errorf("private key is %T, want RSA", parsed)
	}
	sa.key = rsaKey
	return sa, nil
}

// Key returns the parsed signing key.
func (sa ServiceAccount) Key() *rsa.PrivateKey {
	return sa.key
}
