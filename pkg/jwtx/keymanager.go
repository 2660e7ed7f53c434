package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/docket/pkg/cryptox"
)

// Limits on the number of signing keys a KeyManager holds.
const (
	DefaultNumKeys = 3
	MaxNumKeys     = 10
)

// KeyManager owns the signing keys of a docket instance, the KeySet their
// public halves are published from, and a verifier over that set.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	Issuer   string
	Audience []string
	// NumKeys defaults to DefaultNumKeys and is capped at MaxNumKeys.
	NumKeys int
}

// NewEphemeralKeyManager generates fresh Ed25519 keys that only live in
// memory. Tokens stop verifying when the process restarts, which forces a new
// login but never leaves key material on disk.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: issuer is required")
	}

	n := opts.NumKeys
	if n <= 0 {
		n = DefaultNumKeys
	}
	n = min(n, MaxNumKeys)

	km := &KeyManager{KeySet: NewKeySet()}
	km.Verifier = NewVerifierEdDSA(km.KeySet, VerifyOptions{
		Issuer:   opts.Issuer,
		Audience: opts.Audience,
	})

	for i := range n {
		s, err := generateSigner()
		if err != nil {
			return nil, fmt.Errorf("jwtx: signer %d: %w", i+1, err)
		}
		if err := km.AddSigner(s); err != nil {
			return nil, err
		}
	}

	return km, nil
}

func generateSigner() (Signer, error) {
	kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return nil, fmt.Errorf("generate kid: %w", err)
	}
	pemBytes, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	return NewSignerEdDSA("docket-"+kid, pemBytes)
}

// IsReady reports whether the manager can both sign and verify.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0 && km.KeySet.IsReady()
}

// GetSigner returns one of the active signers at random, or nil if none.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners is the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// AddSigner activates s for signing and publishes its public key.
func (km *KeyManager) AddSigner(s Signer) error {
	if s == nil {
		return fmt.Errorf("jwtx: nil signer")
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	if err := km.KeySet.AddSigner(s); err != nil {
		return fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}
	km.signers = append(km.signers, s)
	return nil
}
