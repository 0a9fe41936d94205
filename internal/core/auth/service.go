package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Claims JWT 權杖內容
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Service 認證服務：負責密碼雜湊與權杖簽發
type Service struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	cost   int
}

// NewService 創建認證服務並執行遷移
func NewService(db *gorm.DB, cfg *config.AuthConfig) (*Service, error) {
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		db:     db,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cost,
	}, nil
}

// Signup 註冊新使用者並簽發權杖
func (s *Service) Signup(ctx context.Context, name, email, password string) (*Session, error) {
	user := User{Name: name, Email: email}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, common.NewValidationError("Password must be at least 6 characters")
	}

	// 信箱唯一性檢查
	var existing User
	err := s.db.WithContext(ctx).First(&existing, "email = ?", user.Email).Error
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user.ID = common.GenerateUUID()
	user.PasswordHash = string(hash)
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		common.LogError("新增使用者失敗", zap.Error(err))
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	common.LogInfo("使用者註冊成功", zap.String("email", user.Email))
	return &Session{User: user, Token: token}, nil
}

// Login 驗證帳密並簽發權杖
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	common.LogInfo("使用者登入成功", zap.String("email", user.Email))
	return &Session{User: user, Token: token}, nil
}

// signToken 以 HS256 簽發權杖
func (s *Service) signToken(user User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "kind-kitchen",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// VerifyToken 驗證權杖並回傳內容
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 只接受 HMAC 簽名
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, common.ErrUnauthorized
}
