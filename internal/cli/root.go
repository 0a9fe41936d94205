// Package cli 實作 kitchen 命令列介面
// 每個指令都透過同一個狀態容器操作，不直接呼叫 API
package cli

import (
	"context"
	"fmt"

	clientAPI "kind-kitchen/internal/client/api"
	"kind-kitchen/internal/client/cache"
	"kind-kitchen/internal/client/state"
	"kind-kitchen/internal/infrastructure/config"
	"kind-kitchen/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App 客戶端狀態容器：行程啟動時建構一次，指令共用
type App struct {
	Client  *clientAPI.Client
	Recipes *state.Recipes
	Session *state.Session
}

// NewApp 建構狀態容器並從持久鏡像還原
func NewApp(ctx context.Context, cfg *config.Config) *App {
	client := clientAPI.NewClient(&cfg.Client)

	// Redis 不可用時退回記憶體儲存（當次執行不持久）
	var kv cache.KV
	if cfg.Cache.Enabled {
		svc, err := cache.NewService(cfg.Cache.RedisAddr)
		if err != nil {
			common.LogWarn("本地快取不可用，改用記憶體儲存", zap.Error(err))
			kv = cache.NewMemory()
		} else {
			kv = svc
		}
	} else {
		kv = cache.NewMemory()
	}

	recipes := state.NewRecipes(client, cache.NewSnapshot(kv))
	session := state.NewSession(client, kv)

	recipes.Hydrate(ctx)
	session.Restore(ctx)
	client.SetToken(session.Token())

	return &App{
		Client:  client,
		Recipes: recipes,
		Session: session,
	}
}

// NewRootCommand 創建根指令
func NewRootCommand() *cobra.Command {
	var app *App

	cmd := &cobra.Command{
		Use:           "kitchen",
		Short:         "Kind Kitchen 食譜管理客戶端",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := common.InitLogger(cfg.LogLevel); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app = NewApp(cmd.Context(), cfg)
			return nil
		},
	}

	appRef := func() *App { return app }
	cmd.AddCommand(
		newListCommand(appRef),
		newShowCommand(appRef),
		newAddCommand(appRef),
		newUpdateCommand(appRef),
		newDeleteCommand(appRef),
		newFavoriteCommand(appRef),
		newSignupCommand(appRef),
		newLoginCommand(appRef),
		newLogoutCommand(appRef),
	)

	return cmd
}
