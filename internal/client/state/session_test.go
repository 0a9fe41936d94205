package state

import (
	"context"
	"errors"
	"testing"

	"kind-kitchen/internal/client/cache"
	"kind-kitchen/internal/core/auth"
	"kind-kitchen/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthAPI 可控制回應的認證 API 假實作
type fakeAuthAPI struct {
	session *auth.Session
	err     error
}

func (f *fakeAuthAPI) Signup(ctx context.Context, name, email, password string) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func newTestSession(t *testing.T, api AuthAPI) (*Session, cache.KV) {
	t.Helper()
	common.InitTestLogger()
	kv := cache.NewMemory()
	return NewSession(api, kv), kv
}

func TestLoginSuccess(t *testing.T) {
	api := &fakeAuthAPI{session: &auth.Session{
		User:  auth.User{ID: "u1", Name: "Amy", Email: "amy@example.com"},
		Token: "tok-123",
	}}
	s, _ := newTestSession(t, api)

	s.Login(context.Background(), "amy@example.com", "secret1")

	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "amy@example.com", s.User().Email)
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, Idle, s.Status().Phase)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	api := &fakeAuthAPI{err: errors.New("Invalid email or password")}
	s, _ := newTestSession(t, api)

	s.Login(context.Background(), "amy@example.com", "wrong")

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Equal(t, "Invalid email or password", s.Status().Err())
}

func TestLogoutClearsSessionAndMirror(t *testing.T) {
	api := &fakeAuthAPI{session: &auth.Session{
		User:  auth.User{ID: "u1", Name: "Amy", Email: "amy@example.com"},
		Token: "tok-123",
	}}
	s, kv := newTestSession(t, api)

	s.Login(context.Background(), "amy@example.com", "secret1")
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
	assert.Empty(t, s.Token())

	// 模擬重啟：持久鏡像已清空，新會話維持匿名
	restarted := NewSession(api, kv)
	restarted.Restore(context.Background())
	assert.False(t, restarted.IsAuthenticated())
}

func TestSessionSurvivesRestart(t *testing.T) {
	api := &fakeAuthAPI{session: &auth.Session{
		User:  auth.User{ID: "u1", Name: "Amy", Email: "amy@example.com"},
		Token: "tok-123",
	}}
	s, kv := newTestSession(t, api)
	s.Signup(context.Background(), "Amy", "amy@example.com", "secret1")
	require.True(t, s.IsAuthenticated())

	restarted := NewSession(api, kv)
	restarted.Restore(context.Background())

	require.True(t, restarted.IsAuthenticated())
	assert.Equal(t, "amy@example.com", restarted.User().Email)
	assert.Equal(t, "tok-123", restarted.Token())
}

func TestRestoreWithCorruptUserIsAnonymous(t *testing.T) {
	api := &fakeAuthAPI{}
	s, kv := newTestSession(t, api)

	require.NoError(t, kv.Set(context.Background(), KeyAuthenticated, "true"))
	require.NoError(t, kv.Set(context.Background(), KeyUser, "{not json"))
	require.NoError(t, kv.Set(context.Background(), KeyToken, "tok"))

	s.Restore(context.Background())

	assert.False(t, s.IsAuthenticated())
}
