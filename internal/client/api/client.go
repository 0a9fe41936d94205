// Package api 實作對 REST 介面的客戶端呼叫，
// 請求與回應的形狀即 Client Sync State 消費的契約。
package api

import (
	"context"
	"fmt"
	"sync"

	"kind-kitchen/internal/core/auth"
	"kind-kitchen/internal/core/recipe"
	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Client REST API 客戶端
type Client struct {
	http *resty.Client

	mu    sync.RWMutex
	token string
}

// recipesEnvelope GET /recipes 回應
type recipesEnvelope struct {
	Data struct {
		Recipes []recipe.Recipe `json:"recipes"`
	} `json:"data"`
}

// recipeEnvelope GET/PATCH /recipes/:id 回應
type recipeEnvelope struct {
	Data struct {
		Recipe recipe.Recipe `json:"recipe"`
	} `json:"data"`
}

// newRecipeEnvelope POST /recipes 回應
type newRecipeEnvelope struct {
	Data struct {
		NewRecipe recipe.Recipe `json:"newRecipe"`
	} `json:"data"`
}

// authEnvelope POST /auth/* 回應
type authEnvelope struct {
	Token string `json:"token"`
	Data  struct {
		User auth.User `json:"user"`
	} `json:"data"`
}

// failEnvelope 伺服器的錯誤回應
type failEnvelope struct {
	Message string `json:"message"`
}

// NewClient 創建 API 客戶端
func NewClient(cfg *config.ClientConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{http: client}
}

// SetToken 設定之後請求使用的 Bearer 權杖，空字串表示移除
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// request 建立帶權杖的請求
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	c.mu.RLock()
	if c.token != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	c.mu.RUnlock()
	return req
}

// apiError 非 2xx 回應轉為錯誤，優先用伺服器的 message
func apiError(resp *resty.Response, fallback string) error {
	var fail failEnvelope
	if err := common.ParseJSONBytes(resp.Body(), &fail); err == nil && fail.Message != "" {
		return fmt.Errorf("%s", fail.Message)
	}
	return fmt.Errorf("%s", fallback)
}

// FetchRecipes 取得食譜清單
func (c *Client) FetchRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var envelope recipesEnvelope
	resp, err := c.request(ctx).
		SetResult(&envelope).
		Get("/recipes")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to fetch recipes")
	}
	return envelope.Data.Recipes, nil
}

// FetchRecipe 取得單筆食譜
func (c *Client) FetchRecipe(ctx context.Context, id string) (*recipe.Recipe, error) {
	var envelope recipeEnvelope
	resp, err := c.request(ctx).
		SetResult(&envelope).
		Get(fmt.Sprintf("/recipes/%s", id))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to fetch recipe")
	}
	return &envelope.Data.Recipe, nil
}

// CreateRecipe 新增食譜（需要權杖）
func (c *Client) CreateRecipe(ctx context.Context, draft recipe.Recipe) (*recipe.Recipe, error) {
	var envelope newRecipeEnvelope
	resp, err := c.request(ctx).
		SetBody(draft).
		SetResult(&envelope).
		Post("/recipes")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to add recipe")
	}
	return &envelope.Data.NewRecipe, nil
}

// UpdateRecipe 部分更新食譜（需要權杖）
func (c *Client) UpdateRecipe(ctx context.Context, id string, u recipe.Update) (*recipe.Recipe, error) {
	var envelope recipeEnvelope
	resp, err := c.request(ctx).
		SetBody(u).
		SetResult(&envelope).
		Patch(fmt.Sprintf("/recipes/%s", id))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Failed to update recipe")
	}
	return &envelope.Data.Recipe, nil
}

// DeleteRecipe 刪除食譜（需要權杖）
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	resp, err := c.request(ctx).
		Delete(fmt.Sprintf("/recipes/%s", id))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return apiError(resp, "Failed to delete recipe")
	}
	return nil
}

// Signup 註冊
func (c *Client) Signup(ctx context.Context, name, email, password string) (*auth.Session, error) {
	var envelope authEnvelope
	resp, err := c.request(ctx).
		SetBody(map[string]string{"name": name, "email": email, "password": password}).
		SetResult(&envelope).
		Post("/auth/signup")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Signup failed")
	}
	return &auth.Session{User: envelope.Data.User, Token: envelope.Token}, nil
}

// Login 登入
func (c *Client) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	var envelope authEnvelope
	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&envelope).
		Post("/auth/login")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, apiError(resp, "Login failed")
	}
	return &auth.Session{User: envelope.Data.User, Token: envelope.Token}, nil
}
