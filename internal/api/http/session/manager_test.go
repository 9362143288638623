package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/filedrop/internal/mocks"
	"github.com/dtroode/filedrop/internal/model"
	"github.com/dtroode/filedrop/internal/testutil"
	"github.com/dtroode/filedrop/internal/token"
)

const cookieName = "filedrop_session"

func newManager(revoker model.SessionRevoker) *Manager {
	return NewManager(
		token.NewJWT("secret", time.Hour),
		revoker,
		Options{CookieName: cookieName},
		testutil.MakeNoopLogger(),
	)
}

// replay copies the cookies set on rec into a fresh request.
func replay(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func TestManager_StartAndCurrent(t *testing.T) {
	m := newManager(nil)
	user := model.User{ID: uuid.New(), Username: "alice"}

	rec := httptest.NewRecorder()
	started, err := m.Start(rec, user)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	got, ok := m.Current(replay(rec))
	require.True(t, ok)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, started.TokenID, got.TokenID)
}

func TestManager_Current_Rejects(t *testing.T) {
	m := newManager(nil)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "no cookie"},
		{name: "empty cookie", cookie: &http.Cookie{Name: cookieName, Value: ""}},
		{name: "garbage", cookie: &http.Cookie{Name: cookieName, Value: "not-a-token"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			_, ok := m.Current(req)
			assert.False(t, ok)
		})
	}

	t.Run("foreign secret", func(t *testing.T) {
		other := NewManager(token.NewJWT("other", time.Hour), nil, Options{CookieName: cookieName}, testutil.MakeNoopLogger())
		rec := httptest.NewRecorder()
		_, err := other.Start(rec, model.User{ID: uuid.New(), Username: "mallory"})
		require.NoError(t, err)

		_, ok := m.Current(replay(rec))
		assert.False(t, ok)
	})
}

func TestManager_Clear_RevokesReplayedCookie(t *testing.T) {
	m := newManager(NewMemoryRevoker())
	rec := httptest.NewRecorder()
	_, err := m.Start(rec, model.User{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	stolen := replay(rec)
	_, ok := m.Current(stolen)
	require.True(t, ok)

	out := httptest.NewRecorder()
	require.NoError(t, m.Clear(out, stolen))

	cleared := out.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Equal(t, cookieName, cleared[0].Name)
	assert.Equal(t, -1, cleared[0].MaxAge)

	_, ok = m.Current(stolen)
	assert.False(t, ok)
}

func TestManager_Clear_Anonymous(t *testing.T) {
	revoker := mocks.NewSessionRevoker(t)
	m := newManager(revoker)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Clear(rec, httptest.NewRequest(http.MethodGet, "/logout", nil)))
	revoker.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestManager_RevokerErrors(t *testing.T) {
	revoker := mocks.NewSessionRevoker(t)
	m := newManager(revoker)

	rec := httptest.NewRecorder()
	_, err := m.Start(rec, model.User{ID: uuid.New(), Username: "alice"})
	require.NoError(t, err)
	req := replay(rec)

	revoker.On("IsRevoked", mock.Anything, mock.Anything).Return(false, nil).Once()
	revoker.On("Revoke", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	err = m.Clear(httptest.NewRecorder(), req)
	assert.Error(t, err)

	revoker.On("IsRevoked", mock.Anything, mock.Anything).Return(false, model.ErrUnavailable).Once()
	_, ok := m.Current(req)
	assert.False(t, ok)
}

func TestManager_Flash(t *testing.T) {
	m := newManager(nil)

	rec := httptest.NewRecorder()
	m.SetFlash(rec, "Registration successful! Please login.")

	req := replay(rec)
	out := httptest.NewRecorder()
	msg, ok := m.PopFlash(out, req)
	require.True(t, ok)
	assert.Equal(t, "Registration successful! Please login.", msg)

	expired := out.Result().Cookies()
	require.Len(t, expired, 1)
	assert.Equal(t, -1, expired[0].MaxAge)

	_, ok = m.PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestMemoryRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRevoker()
	base := time.Now()
	r.now = func() time.Time { return base }

	require.NoError(t, r.Revoke(ctx, "a", base.Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "expired", base.Add(-time.Minute)))

	revoked, err := r.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = r.IsRevoked(ctx, "expired")
	assert.False(t, revoked)

	r.now = func() time.Time { return base.Add(2 * time.Minute) }
	revoked, _ = r.IsRevoked(ctx, "a")
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "b", base.Add(time.Hour)))
	assert.NotContains(t, r.revoked, "a")
}
