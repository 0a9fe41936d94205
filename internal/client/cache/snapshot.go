package cache

import (
	"context"
	"encoding/json"

	"kind-kitchen/internal/core/recipe"
	"kind-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipesKey 食譜快照的儲存鍵
const RecipesKey = "kindKitchenRecipes"

// Snapshot 食譜集合的持久快照
type Snapshot struct {
	kv KV
}

// NewSnapshot 創建食譜快照
func NewSnapshot(kv KV) *Snapshot {
	return &Snapshot{kv: kv}
}

// Save 序列化整個集合寫入儲存
// 盡力而為：寫入失敗只記 log，不讓觸發的操作失敗
func (s *Snapshot) Save(ctx context.Context, recipes []recipe.Recipe) {
	data, err := json.Marshal(recipes)
	if err != nil {
		common.LogWarn("食譜快照序列化失敗", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, RecipesKey, string(data)); err != nil {
		common.LogWarn("食譜快照寫入失敗", zap.Error(err))
	}
}

// Load 讀取先前儲存的集合
// 不存在或資料毀損一律當作「沒有快照」，回傳 nil
func (s *Snapshot) Load(ctx context.Context) []recipe.Recipe {
	raw, err := s.kv.Get(ctx, RecipesKey)
	if err != nil {
		if err != ErrKeyNotFound {
			common.LogWarn("食譜快照讀取失敗", zap.Error(err))
		}
		return nil
	}

	var recipes []recipe.Recipe
	if err := json.Unmarshal([]byte(raw), &recipes); err != nil {
		common.LogWarn("食譜快照解析失敗，視為不存在", zap.Error(err))
		return nil
	}
	return recipes
}

// Merge 以伺服器清單為準合併本地快照
// 輸出的 id 集合由 serverList 決定；同 id 的快照記錄覆蓋本地欄位
// （favorite 是唯一允許與伺服器長期分歧的欄位）
func Merge(serverList, cachedList []recipe.Recipe) []recipe.Recipe {
	if len(cachedList) == 0 {
		return serverList
	}

	cached := make(map[string]recipe.Recipe, len(cachedList))
	for _, r := range cachedList {
		cached[r.ID] = r
	}

	merged := make([]recipe.Recipe, len(serverList))
	for i, srv := range serverList {
		if local, exists := cached[srv.ID]; exists {
			srv.Favorite = local.Favorite
		}
		merged[i] = srv
	}
	return merged
}
