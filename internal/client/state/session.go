package state

import (
	"context"
	"encoding/json"
	"sync"

	"kind-kitchen/internal/client/cache"
	"kind-kitchen/internal/core/auth"
	"kind-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// 會話的持久鏡像鍵
const (
	KeyAuthenticated = "isAuthenticated"
	KeyUser          = "user"
	KeyToken         = "token"
)

// AuthAPI 會話狀態機對 API 層的依賴
type AuthAPI interface {
	Signup(ctx context.Context, name, email, password string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}

// Session 登入會話狀態機
// anonymous → authenticating → authenticated，登出回到 anonymous
type Session struct {
	mu  sync.Mutex
	api AuthAPI
	kv  cache.KV

	authenticated bool
	user          *auth.User
	token         string
	status        Status
}

// NewSession 創建會話狀態機
func NewSession(api AuthAPI, kv cache.KV) *Session {
	return &Session{api: api, kv: kv}
}

// Restore 啟動時從持久鏡像還原會話
func (s *Session) Restore(ctx context.Context) {
	flag, err := s.kv.Get(ctx, KeyAuthenticated)
	if err != nil || flag != "true" {
		return
	}

	rawUser, err := s.kv.Get(ctx, KeyUser)
	if err != nil {
		return
	}
	var user auth.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		common.LogWarn("會話快照解析失敗，視為未登入", zap.Error(err))
		return
	}
	token, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.user = &user
	s.token = token
}

// Signup 註冊，成功即進入已登入狀態並持久化
func (s *Session) Signup(ctx context.Context, name, email, password string) {
	s.mu.Lock()
	s.status.begin()
	s.mu.Unlock()

	session, err := s.api.Signup(ctx, name, email, password)
	s.apply(ctx, session, err, "Signup failed")
}

// Login 登入，成功即進入已登入狀態並持久化
func (s *Session) Login(ctx context.Context, email, password string) {
	s.mu.Lock()
	s.status.begin()
	s.mu.Unlock()

	session, err := s.api.Login(ctx, email, password)
	s.apply(ctx, session, err, "Login failed")
}

// apply 套用認證結果並鏡像到持久儲存
func (s *Session) apply(ctx context.Context, session *auth.Session, err error, fallback string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.status.fail(err.Error(), fallback)
		return
	}

	s.authenticated = true
	s.user = &session.User
	s.token = session.Token
	s.status.succeed()

	// 鏡像寫入失敗不影響本次登入
	s.persist(ctx, session)
}

func (s *Session) persist(ctx context.Context, session *auth.Session) {
	if err := s.kv.Set(ctx, KeyAuthenticated, "true"); err != nil {
		common.LogWarn("會話快照寫入失敗", zap.Error(err))
		return
	}
	rawUser, err := json.Marshal(session.User)
	if err != nil {
		common.LogWarn("會話快照序列化失敗", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, KeyUser, string(rawUser)); err != nil {
		common.LogWarn("會話快照寫入失敗", zap.Error(err))
	}
	if err := s.kv.Set(ctx, KeyToken, session.Token); err != nil {
		common.LogWarn("會話快照寫入失敗", zap.Error(err))
	}
}

// Logout 同步登出：清掉會話與持久鏡像，永遠成功
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authenticated = false
	s.user = nil
	s.token = ""
	s.status = Status{}

	if err := s.kv.Del(ctx, KeyAuthenticated, KeyUser, KeyToken); err != nil {
		common.LogWarn("會話快照清除失敗", zap.Error(err))
	}
}

// IsAuthenticated 是否已登入
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User 目前的使用者，未登入為 nil
func (s *Session) User() *auth.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token 目前的權杖，未登入為空字串
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Status 登入／註冊操作狀態
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
