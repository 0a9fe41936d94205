package auth

import (
	"regexp"
	"strings"
	"time"

	"kind-kitchen/internal/pkg/common"
)

// User 使用者
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"size:80"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:254"`
	PasswordHash string    `json:"-" gorm:"column:password"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

// Validate 驗證使用者欄位（密碼另行檢查）
func (u *User) Validate() error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if len(u.Name) < 2 {
		return common.NewValidationError("Name must be at least 2 characters")
	}
	if len(u.Name) > 80 {
		return common.NewValidationError("Name too long")
	}
	if !emailPattern.MatchString(u.Email) {
		return common.NewValidationError("Invalid email")
	}
	return nil
}

// Session 認證結果：使用者加上簽發的權杖
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
