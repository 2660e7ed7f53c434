package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/pkg/cryptox"
	"github.com/aussiebroadwan/docket/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	s, err := jwtx.NewSignerEdDSA(kid, pemBytes)
	require.NoError(t, err)
	return s
}

func claimsAt(now time.Time) jwtx.Claims {
	return jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:   "01HZY0000000000000000000AA",
		SessionID: "01HZY0000000000000000000BB",
		Role:      "attorney",
		Email:     "ada@example.com",
		Name:      "Ada",
		Issuer:    "https://docket.test",
		Audience:  []string{"docket"},
		TTL:       time.Minute,
		Now:       now,
	})
}

func TestSignAndVerify(t *testing.T) {
	s := newSigner(t, "k1")
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddSigner(s))

	now := time.Now()
	tok, err := s.Sign(claimsAt(now))
	require.NoError(t, err)
	require.Len(t, strings.Split(tok, "."), 3)

	v := jwtx.NewVerifierEdDSA(ks, jwtx.VerifyOptions{
		Issuer:   "https://docket.test",
		Audience: []string{"docket"},
		Now:      func() time.Time { return now.Add(30 * time.Second) },
	})

	got, err := v.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "01HZY0000000000000000000AA", got.Subject)
	require.Equal(t, "01HZY0000000000000000000BB", got.SID)
	require.Equal(t, "attorney", got.Role)
	require.Equal(t, "ada@example.com", got.Email)
	require.Equal(t, "Ada", got.Name)
	require.NotEmpty(t, got.ID)
}

func TestVerify_Rejects(t *testing.T) {
	s := newSigner(t, "k1")
	ks := jwtx.NewKeySet()
	require.NoError(t, ks.AddSigner(s))

	now := time.Now()
	verifierAt := func(at time.Time, issuer string, aud ...string) *jwtx.EdDSAVerifier {
		return jwtx.NewVerifierEdDSA(ks, jwtx.VerifyOptions{
			Issuer:   issuer,
			Audience: aud,
			Now:      func() time.Time { return at },
		})
	}

	tok, err := s.Sign(claimsAt(now))
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		_, err := verifierAt(now.Add(2*time.Minute), "").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		_, err := verifierAt(now.Add(-time.Hour), "").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := verifierAt(now, "https://other").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := verifierAt(now, "", "billing").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("unknown kid", func(t *testing.T) {
		other := newSigner(t, "k2")
		foreign, err := other.Sign(claimsAt(now))
		require.NoError(t, err)

		_, err = verifierAt(now, "").Verify(foreign)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("tampered", func(t *testing.T) {
		parts := strings.Split(tok, ".")
		bad := parts[0] + "." + parts[1] + "x." + parts[2]
		_, err := verifierAt(now, "").Verify(bad)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifierAt(now, "").Verify("not.a.token")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("missing session id", func(t *testing.T) {
		c := claimsAt(now)
		c.SID = ""
		tok, err := s.Sign(c)
		require.NoError(t, err)

		_, err = verifierAt(now, "").Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})
}

func TestNewAccessClaims_DefaultTTL(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	c := jwtx.NewAccessClaims(jwtx.AccessClaimsParams{Subject: "u", Now: now})
	require.Equal(t, now.Add(jwtx.DefaultAccessTokenTTL), c.ExpiresAt.Time)
	require.NotEqual(t, c.ID, jwtx.NewJTI())
}

func TestNewSignerEdDSA_BadInput(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("k", []byte("nope"))
	require.Error(t, err)

	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	_, err = jwtx.NewSignerEdDSA("", pemBytes)
	require.Error(t, err)
}

func TestKeySet(t *testing.T) {
	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())

	_, err := ks.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)

	s1, s2 := newSigner(t, "a"), newSigner(t, "b")
	require.NoError(t, ks.AddSigner(s1))
	require.NoError(t, ks.AddSigner(s2))
	require.NoError(t, ks.AddSigner(s1))
	require.Len(t, ks.PublicJWKS().Keys, 2)

	require.Error(t, ks.AddJWK(jwtx.JWK{Kty: "RSA", Kid: "r"}))
	require.Error(t, ks.AddJWK(jwtx.JWK{Kty: "OKP", Crv: "X25519", Kid: "x"}))

	require.NoError(t, ks.ResetFromJWKS(jwtx.JWKS{Keys: []jwtx.JWK{s2.PublicJWK()}}))
	_, err = ks.Get("a")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
	_, err = ks.Get("b")
	require.NoError(t, err)
}

func TestJWK_PEM(t *testing.T) {
	s := newSigner(t, "a")
	j := s.PublicJWK()
	require.Equal(t, "OKP", j.Kty)
	require.Equal(t, "Ed25519", j.Crv)
	require.Equal(t, "EdDSA", j.Alg)

	p, err := j.PEM()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(p, "-----BEGIN PUBLIC KEY-----"))
}

func TestEphemeralKeyManager(t *testing.T) {
	_, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://docket.test"})
	require.NoError(t, err)
	require.True(t, km.IsReady())
	require.Equal(t, jwtx.DefaultNumKeys, km.NumSigners())
	require.Len(t, km.KeySet.PublicJWKS().Keys, jwtx.DefaultNumKeys)

	// Every signer's tokens verify through the shared verifier.
	for range 10 {
		tok, err := km.GetSigner().Sign(claimsAt(time.Now()))
		require.NoError(t, err)
		_, err = km.Verifier.Verify(tok)
		require.NoError(t, err)
	}

	big, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "i", NumKeys: 50})
	require.NoError(t, err)
	require.Equal(t, jwtx.MaxNumKeys, big.NumSigners())
}
