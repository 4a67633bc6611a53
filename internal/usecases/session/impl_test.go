package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leoalmeida/desafio-fullstack/internal/domain"
	"github.com/leoalmeida/desafio-fullstack/internal/pkg/serviceerrors"
)

// makeToken monta um token com o payload dado; a assinatura fica vazia porque
// o store nunca a confere.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func adminToken(t *testing.T) string {
	t.Helper()

	return makeToken(t, map[string]any{
		"id":          int64(42),
		"username":    "maria",
		"roles":       []string{"ADMIN"},
		"permissions": []string{"beneficios:write"},
	})
}

func TestSaveTokenDecodesSession(t *testing.T) {
	store := NewImplementation(NewMemory())

	require.NoError(t, store.SaveToken(context.Background(), adminToken(t)))

	assert.True(t, store.Authenticated())

	current := store.Current()
	assert.Equal(t, int64(42), current.ID)
	assert.Equal(t, "maria", current.Username)
	assert.Equal(t, []string{"ADMIN"}, current.Roles)
	assert.Equal(t, []string{"beneficios:write"}, current.Permissions)

	raw, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, adminToken(t), raw)
}

func TestSaveTokenMalformedIsAtomic(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty token", raw: ""},
		{name: "single segment", raw: "abc"},
		{name: "invalid base64 payload", raw: "aGVhZGVy.!!!!."},
		{
			name: "payload is not json",
			raw: base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`)) + "." +
				base64.RawURLEncoding.EncodeToString([]byte(`nao-e-json`)) + ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewImplementation(NewMemory())

			// Estado anterior preservado partindo tanto da sessão anônima
			// quanto de uma sessão já ativa.
			err := store.SaveToken(context.Background(), tt.raw)
			require.Error(t, err)
			assert.False(t, store.Authenticated())
			assert.True(t, store.Current().Anonymous())

			require.NoError(t, store.SaveToken(context.Background(), adminToken(t)))
			before := store.Current()

			err = store.SaveToken(context.Background(), tt.raw)
			require.Error(t, err)

			var appErr *serviceerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, serviceerrors.KindDecode, appErr.Kind)

			assert.True(t, store.Authenticated())
			assert.Equal(t, before, store.Current())
		})
	}
}

func TestClearResetsEverything(t *testing.T) {
	store := NewImplementation(NewMemory())

	require.NoError(t, store.SaveToken(context.Background(), adminToken(t)))
	require.NoError(t, store.SaveProfile(`{"nome":"Maria"}`))

	require.NoError(t, store.Clear(context.Background()))

	assert.False(t, store.Authenticated())
	assert.True(t, store.Current().Anonymous())

	_, ok := store.Token()
	assert.False(t, ok, "token deveria ser descartado junto com a sessão")

	_, ok = store.Profile()
	assert.False(t, ok, "perfil em cache deveria ser descartado junto com o token")
}

func TestClearFromAnyPriorState(t *testing.T) {
	store := NewImplementation(NewMemory())

	// Clear sem sessão ativa também é válido.
	require.NoError(t, store.Clear(context.Background()))
	assert.False(t, store.Authenticated())
}

func TestGuardMatchesAuthenticated(t *testing.T) {
	store := NewImplementation(NewMemory())

	assert.Equal(t, store.Authenticated(), store.CanActivate())
	assert.False(t, store.CanActivate())

	require.NoError(t, store.SaveToken(context.Background(), adminToken(t)))
	assert.Equal(t, store.Authenticated(), store.CanActivate())
	assert.True(t, store.CanActivate())

	require.NoError(t, store.Clear(context.Background()))
	assert.False(t, store.CanActivate())
}

func TestPermissionChecks(t *testing.T) {
	s := domain.Session{
		ID:    42,
		Roles: []string{"ADMIN", "USER"},
	}

	tests := []struct {
		name   string
		userID int64
		role   string
		want   bool
	}{
		{name: "same user with role", userID: 42, role: "ADMIN", want: true},
		{name: "same user without role", userID: 42, role: "AUDITOR", want: false},
		{name: "other user with role", userID: 7, role: "ADMIN", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanActivateUser(s, tt.userID, tt.role))
		})
	}

	assert.True(t, CanMatch(s, "USER"))
	assert.False(t, CanMatch(s, "AUDITOR"))
}

func TestSessionsStreamPublishesChanges(t *testing.T) {
	store := NewImplementation(NewMemory())

	sessions, unsubSessions := store.Sessions()
	defer unsubSessions()

	auth, unsubAuth := store.AuthChanges()
	defer unsubAuth()

	require.NoError(t, store.SaveToken(context.Background(), adminToken(t)))

	published := <-sessions
	assert.Equal(t, int64(42), published.ID)
	assert.True(t, <-auth)

	require.NoError(t, store.Clear(context.Background()))

	assert.True(t, (<-sessions).Anonymous())
	assert.False(t, <-auth)
}
