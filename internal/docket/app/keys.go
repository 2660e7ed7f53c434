package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/docket/pkg/jwtx"
)

// InitKeys generates the process's signing keys. They live only in memory,
// so a restart invalidates every access token and users log in again. The
// sessions themselves survive in the store.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("generated ephemeral signing keys",
		"algorithm", jwtx.AlgorithmEdDSA,
		"num_keys", km.NumSigners(),
		"issuer", cfg.Issuer,
	)
	return km, nil
}
