package recipe

import (
	"regexp"
	"strings"
	"time"

	"kind-kitchen/internal/pkg/common"
)

// Recipe 食譜
type Recipe struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	Name         string    `json:"name" gorm:"size:120;index"`
	Ingredients  []string  `json:"ingredients" gorm:"serializer:json"`
	Instructions string    `json:"instructions"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Category     string    `json:"category,omitempty" gorm:"index"`
	Favorite     bool      `json:"favorite" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Update 部分更新欄位，nil 表示該欄位不變
type Update struct {
	Name         *string   `json:"name,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty"`
	Instructions *string   `json:"instructions,omitempty"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Favorite     *bool     `json:"favorite,omitempty"`
}

// Categories 前端使用的分類清單（伺服器端不強制封閉集合）
var Categories = []string{
	"Dessert",
	"Main Course",
	"Snack",
	"Salad",
	"Breakfast",
	"Drink",
}

var imageURLPattern = regexp.MustCompile(`^(https?://)[\w.-]+(?:\.[\w.-]+)+[\w\-._~:/?#\[\]@!$&'()*+,;=.]*$`)

// Validate 驗證食譜欄位
func (r *Recipe) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Instructions = strings.TrimSpace(r.Instructions)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.Category = strings.TrimSpace(r.Category)

	if len(r.Name) < 2 {
		return common.NewValidationError("Name must be at least 2 characters")
	}
	if len(r.Name) > 120 {
		return common.NewValidationError("Name too long")
	}
	if len(r.Instructions) < 5 {
		return common.NewValidationError("Instructions too short")
	}

	// 清理食材字串，空白項視為無效
	cleaned := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			return common.NewValidationError("Ingredients must be non-empty strings")
		}
		cleaned = append(cleaned, ing)
	}
	r.Ingredients = cleaned

	if r.ImageURL != "" && !imageURLPattern.MatchString(r.ImageURL) {
		return common.NewValidationError("Invalid image URL")
	}

	return nil
}

// Apply 將部分更新套用到食譜
func (r *Recipe) Apply(u Update) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Ingredients != nil {
		r.Ingredients = *u.Ingredients
	}
	if u.Instructions != nil {
		r.Instructions = *u.Instructions
	}
	if u.ImageURL != nil {
		r.ImageURL = *u.ImageURL
	}
	if u.Category != nil {
		r.Category = *u.Category
	}
	if u.Favorite != nil {
		r.Favorite = *u.Favorite
	}
}

var stepSeparator = regexp.MustCompile(`\n|\.|=>`)

// SplitSteps 將自由文字的做法切成顯示用的步驟
// 僅供呈現使用，不影響儲存格式
func SplitSteps(instructions string) []string {
	parts := stepSeparator.Split(instructions, -1)
	steps := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			steps = append(steps, p)
		}
	}
	return steps
}
