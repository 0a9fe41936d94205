package state

import (
	"context"
	"strings"
	"sync"

	"kind-kitchen/internal/client/cache"
	"kind-kitchen/internal/core/recipe"
	"kind-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

// CategoryAll 分類過濾的「不過濾」哨兵值
const CategoryAll = "all"

// RecipeAPI 食譜狀態機對 API 層的依賴
type RecipeAPI interface {
	FetchRecipes(ctx context.Context) ([]recipe.Recipe, error)
	FetchRecipe(ctx context.Context, id string) (*recipe.Recipe, error)
	CreateRecipe(ctx context.Context, draft recipe.Recipe) (*recipe.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, u recipe.Update) (*recipe.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// Recipes 食譜集合狀態機：集合、單筆明細、過濾條件與各操作狀態的唯一來源。
// 非同步操作的結果依完成順序套用，同種類的並發操作不做去重或排序。
type Recipes struct {
	mu   sync.Mutex
	api  RecipeAPI
	snap *cache.Snapshot

	list           []recipe.Recipe
	detail         *recipe.Recipe
	search         string
	categoryFilter string

	listStatus   Status
	detailStatus Status
	addStatus    Status
	updateStatus Status
	deleteStatus Status
}

// NewRecipes 創建食譜狀態機
// 行程啟動時建構一次，與行程同壽命
func NewRecipes(api RecipeAPI, snap *cache.Snapshot) *Recipes {
	return &Recipes{
		api:            api,
		snap:           snap,
		categoryFilter: CategoryAll,
	}
}

// Hydrate 啟動時載入先前的快照，讓第一次 fetch 完成前就能看到上次的狀態
func (r *Recipes) Hydrate(ctx context.Context) {
	persisted := r.snap.Load(ctx)
	if persisted == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = persisted
	common.LogDebug("從本地快照還原食譜", zap.Int("count", len(persisted)))
}

// FetchList 從伺服器取得食譜清單，與本地快照合併後取代集合
func (r *Recipes) FetchList(ctx context.Context) {
	r.mu.Lock()
	r.listStatus.begin()
	r.mu.Unlock()

	recipes, err := r.api.FetchRecipes(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		// 失敗只記訊息，集合不變
		r.listStatus.fail(err.Error(), "Error in fetch data")
		return
	}

	if cached := r.snap.Load(ctx); cached != nil {
		r.list = cache.Merge(recipes, cached)
	} else {
		r.list = recipes
	}
	r.snap.Save(ctx, r.list)
	r.listStatus.succeed()
}

// FetchOne 取得單筆食譜作為明細
func (r *Recipes) FetchOne(ctx context.Context, id string) {
	r.mu.Lock()
	r.detailStatus.begin()
	r.mu.Unlock()

	rec, err := r.api.FetchRecipe(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.detailStatus.fail(err.Error(), "Error in fetch single recipe")
		return
	}
	r.detail = rec
	r.detailStatus.succeed()
}

// Add 新增食譜，成功後把伺服器回傳的記錄附加到集合
func (r *Recipes) Add(ctx context.Context, draft recipe.Recipe) {
	r.mu.Lock()
	r.addStatus.begin()
	r.mu.Unlock()

	created, err := r.api.CreateRecipe(ctx, draft)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.addStatus.fail(err.Error(), "Error in post data")
		return
	}
	r.list = append(r.list, *created)
	r.snap.Save(ctx, r.list)
	r.addStatus.succeed()
}

// Update 部分更新，成功後以伺服器回傳的完整記錄取代集合與明細中的項目
func (r *Recipes) Update(ctx context.Context, id string, u recipe.Update) {
	r.mu.Lock()
	r.updateStatus.begin()
	r.mu.Unlock()

	updated, err := r.api.UpdateRecipe(ctx, id, u)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.updateStatus.fail(err.Error(), "Error updating recipe")
		return
	}
	for i := range r.list {
		if r.list[i].ID == updated.ID {
			r.list[i] = *updated
			break
		}
	}
	if r.detail != nil && r.detail.ID == updated.ID {
		r.detail = updated
	}
	r.snap.Save(ctx, r.list)
	r.updateStatus.succeed()
}

// Delete 刪除食譜，成功後自集合移除並清掉對應的明細
func (r *Recipes) Delete(ctx context.Context, id string) {
	r.mu.Lock()
	r.deleteStatus.begin()
	r.mu.Unlock()

	err := r.api.DeleteRecipe(ctx, id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.deleteStatus.fail(err.Error(), "Error deleting recipe")
		return
	}
	kept := r.list[:0]
	for _, rec := range r.list {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	r.list = kept
	if r.detail != nil && r.detail.ID == id {
		r.detail = nil
	}
	r.snap.Save(ctx, r.list)
	r.deleteStatus.succeed()
}

// SetSearch 設定搜尋字串，空字串表示不過濾
func (r *Recipes) SetSearch(term string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search = term
}

// SetCategoryFilter 設定分類過濾，"all" 或空字串表示不過濾
func (r *Recipes) SetCategoryFilter(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categoryFilter = category
}

// ToggleFavorite 同步翻轉收藏旗標並立即持久化整個集合
// 這是唯一允許與伺服器長期分歧的欄位；找不到 id 時安靜略過
func (r *Recipes) ToggleFavorite(ctx context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.list {
		if r.list[i].ID == id {
			r.list[i].Favorite = !r.list[i].Favorite
			if r.detail != nil && r.detail.ID == id {
				r.detail.Favorite = r.list[i].Favorite
			}
			r.snap.Save(ctx, r.list)
			return
		}
	}
}

// List 集合的目前內容（複本）
func (r *Recipes) List() []recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recipe.Recipe, len(r.list))
	copy(out, r.list)
	return out
}

// Detail 目前的單筆明細，無則回傳 nil
func (r *Recipes) Detail() *recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detail == nil {
		return nil
	}
	d := *r.detail
	return &d
}

// Filtered 依搜尋與分類計算的衍生檢視，保持集合原本的順序
func (r *Recipes) Filtered() []recipe.Recipe {
	r.mu.Lock()
	defer r.mu.Unlock()

	term := strings.ToLower(r.search)
	out := make([]recipe.Recipe, 0, len(r.list))
	for _, rec := range r.list {
		if !matchesSearch(rec, term) {
			continue
		}
		if r.categoryFilter != CategoryAll && r.categoryFilter != "" && rec.Category != r.categoryFilter {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesSearch 名稱或任一食材包含搜尋字串（不分大小寫的子字串比對）
func matchesSearch(rec recipe.Recipe, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Name), term) {
		return true
	}
	for _, ing := range rec.Ingredients {
		if strings.Contains(strings.ToLower(ing), term) {
			return true
		}
	}
	return false
}

// ListStatus 清單操作狀態
func (r *Recipes) ListStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listStatus
}

// DetailStatus 明細操作狀態
func (r *Recipes) DetailStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detailStatus
}

// AddStatus 新增操作狀態
func (r *Recipes) AddStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addStatus
}

// UpdateStatus 更新操作狀態
func (r *Recipes) UpdateStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateStatus
}

// DeleteStatus 刪除操作狀態
func (r *Recipes) DeleteStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteStatus
}
