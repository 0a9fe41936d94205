package recipe

import (
	"net/http"

	recipeCore "kind-kitchen/internal/core/recipe"
	"kind-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	store *recipeCore.Store
}

// NewHandler 創建新的食譜處理程序
func NewHandler(store *recipeCore.Store) *Handler {
	return &Handler{store: store}
}

// HandleList GET /recipes 取得全部食譜
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch recipes",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(recipes),
		"data":    gin.H{"recipes": recipes},
	})
}

// HandleGet GET /recipes/:id 取得單筆食譜
func (h *Handler) HandleGet(c *gin.Context) {
	id := c.Param("id")
	rec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if err == common.ErrRecipeNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Recipe not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to fetch recipe",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"recipe": rec},
	})
}

// HandleCreate POST /recipes 新增食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var rec recipeCore.Recipe
	if err := c.ShouldBindJSON(&rec); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request format",
		})
		return
	}
	rec.ID = "" // 伺服器端指派 ID

	if err := h.store.Create(c.Request.Context(), &rec); err != nil {
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "fail",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create recipe",
		})
		return
	}

	common.LogInfo("新增食譜",
		zap.String("id", rec.ID),
		zap.String("name", rec.Name),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"newRecipe": rec},
	})
}

// HandleUpdate PATCH /recipes/:id 部分更新食譜
func (h *Handler) HandleUpdate(c *gin.Context) {
	id := c.Param("id")

	var u recipeCore.Update
	if err := c.ShouldBindJSON(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request format",
		})
		return
	}

	rec, err := h.store.Update(c.Request.Context(), id, u)
	if err != nil {
		if err == common.ErrRecipeNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Invalid Id",
			})
			return
		}
		if common.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "fail",
				"message": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update recipe",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"recipe": rec},
	})
}

// HandleDelete DELETE /recipes/:id 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if err == common.ErrRecipeNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Invalid Id",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete recipe",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
