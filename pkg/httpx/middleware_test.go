package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/docket/pkg/httpx"
	"github.com/aussiebroadwan/docket/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	err  error
	seen []string
}

func (f *fakeSessions) CheckSession(_ context.Context, sid, userID string) error {
	f.seen = append(f.seen, sid+"/"+userID)
	return f.err
}

func issue(t *testing.T, km *jwtx.KeyManager, role string) string {
	t.Helper()
	tok, err := km.GetSigner().Sign(jwtx.NewAccessClaims(jwtx.AccessClaimsParams{
		Subject:   "user-1",
		SessionID: "sess-1",
		Role:      role,
		Issuer:    "https://docket.test",
		TTL:       time.Minute,
		Now:       time.Now(),
	}))
	require.NoError(t, err)
	return tok
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("a"), mw("b"), mw("c"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://docket.test", NumKeys: 1})
	require.NoError(t, err)

	var gotUser, gotRole, gotSID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = httpx.UserID(r.Context())
		gotRole = httpx.Role(r.Context())
		gotSID = httpx.SessionID(r.Context())
		_, ok := httpx.Claims(r.Context())
		require.True(t, ok)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token and session", func(t *testing.T) {
		sessions := &fakeSessions{}
		h := httpx.AuthnMiddleware(km.Verifier, sessions)(inner)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, km, "manager"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-1", gotUser)
		require.Equal(t, "manager", gotRole)
		require.Equal(t, "sess-1", gotSID)
		require.Equal(t, []string{"sess-1/user-1"}, sessions.seen)
	})

	t.Run("missing header", func(t *testing.T) {
		h := httpx.AuthnMiddleware(km.Verifier, nil)(inner)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), `error="invalid_token"`)
	})

	t.Run("bad token", func(t *testing.T) {
		h := httpx.AuthnMiddleware(km.Verifier, nil)(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var body httpx.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "invalid_token", body.Error)
	})

	t.Run("revoked session", func(t *testing.T) {
		h := httpx.AuthnMiddleware(km.Verifier, &fakeSessions{err: errors.New("revoked")})(inner)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, km, "manager"))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "session is no longer valid")
	})
}

func TestRequireAnyRole(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "https://docket.test", NumKeys: 1})
	require.NoError(t, err)

	h := httpx.Chain(okHandler(),
		httpx.AuthnMiddleware(km.Verifier, nil),
		httpx.RequireAnyRole("org_admin"),
	)

	for role, want := range map[string]int{
		"org_admin": http.StatusOK,
		"attorney":  http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, km, role))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, want, rec.Code, role)
	}
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	for _, tc := range []struct {
		in   string
		fail bool
	}{
		{`{"name":"a"}`, false},
		{`{"name":"a","extra":1}`, true},
		{`{"name":"a"} {"name":"b"}`, true},
		{`not json`, true},
	} {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.in))
		err := httpx.DecodeJSON(req, &b)
		if tc.fail {
			require.Error(t, err, tc.in)
		} else {
			require.NoError(t, err, tc.in)
			require.Equal(t, "a", b.Name)
		}
	}
}

func TestWriteValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteValidation(rec, map[string]string{"email": "required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body httpx.ValidationBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "validation_error", body.Code)
	require.Equal(t, "required", body.Details["email"])
}
