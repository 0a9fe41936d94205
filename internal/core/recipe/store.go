package recipe

import (
	"context"
	"errors"

	"kind-kitchen/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store 食譜記錄存放區
type Store struct {
	db *gorm.DB
}

// NewStore 創建食譜存放區並執行遷移
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Recipe{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// List 取得全部食譜，最新建立的在前
func (s *Store) List(ctx context.Context) ([]Recipe, error) {
	var recipes []Recipe
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&recipes).Error; err != nil {
		common.LogError("查詢食譜列表失敗", zap.Error(err))
		return nil, err
	}
	return recipes, nil
}

// Get 依 ID 取得單一食譜
func (s *Store) Get(ctx context.Context, id string) (*Recipe, error) {
	var r Recipe
	if err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRecipeNotFound
		}
		common.LogError("查詢食譜失敗", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	return &r, nil
}

// Create 新增食譜，伺服器端指派 ID
func (s *Store) Create(ctx context.Context, r *Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = common.GenerateUUID()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		common.LogError("新增食譜失敗", zap.Error(err))
		return err
	}
	return nil
}

// Update 套用部分更新並回傳完整記錄
func (s *Store) Update(ctx context.Context, id string, u Update) (*Recipe, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Apply(u)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(r).Error; err != nil {
		common.LogError("更新食譜失敗", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	return r, nil
}

// Delete 依 ID 刪除食譜
func (s *Store) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&Recipe{}, "id = ?", id)
	if result.Error != nil {
		common.LogError("刪除食譜失敗", zap.Error(result.Error), zap.String("id", id))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrRecipeNotFound
	}
	return nil
}
