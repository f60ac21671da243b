package verify

import (
	"bytes"
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks detached signatures over downloaded packages
type Verifier interface {
	VerifyDetached(data, signature []byte) (string, error)
}

// GPGVerifier verifies OpenPGP detached signatures against a keyring
type GPGVerifier struct {
	keyring openpgp.EntityList
}

// NewGPGVerifier loads a public keyring, armored or binary
func NewGPGVerifier(keyringPath string) (*GPGVerifier, error) {
	if keyringPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	data, err := os.ReadFile(keyringPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entityList, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &GPGVerifier{keyring: entityList}, nil
}

// VerifyDetached checks an armored or binary detached signature over data
// and returns the identity of the signing key
func (v *GPGVerifier) VerifyDetached(data, signature []byte) (string, error) {
	signer, err := openpgp.CheckArmoredDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
	if err != nil {
		signer, err = openpgp.CheckDetachedSignature(v.keyring, bytes.NewReader(data), bytes.NewReader(signature), nil)
		if err != nil {
			return "", fmt.Errorf("signature verification failed: %w", err)
		}
	}

	return identityOf(signer), nil
}

func identityOf(e *openpgp.Entity) string {
	if e == nil {
		return ""
	}
	for name := range e.Identities {
		return name
	}
	return fmt.Sprintf("%X", e.PrimaryKey.Fingerprint)
}
