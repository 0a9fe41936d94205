package cli

import (
	"fmt"
	"strings"

	"kind-kitchen/internal/core/recipe"

	"github.com/spf13/cobra"
)

// newListCommand 列出食譜，支援搜尋與分類過濾
func newListCommand(app func() *App) *cobra.Command {
	var search, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "列出食譜",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Recipes.FetchList(cmd.Context())
			if msg := a.Recipes.ListStatus().Err(); msg != "" {
				// 抓取失敗時仍顯示快照內容
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
			}

			a.Recipes.SetSearch(search)
			if category != "" {
				a.Recipes.SetCategoryFilter(category)
			}

			for _, r := range a.Recipes.Filtered() {
				marker := " "
				if r.Favorite {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %-24s %s\n", marker, r.ID, r.Name, r.Category)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "以名稱或食材過濾")
	cmd.Flags().StringVar(&category, "category", "", fmt.Sprintf("分類過濾 (%s)", strings.Join(recipe.Categories, ", ")))

	return cmd
}

// newShowCommand 顯示單筆食譜
func newShowCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "顯示食譜明細",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Recipes.FetchOne(cmd.Context(), args[0])
			if msg := a.Recipes.DetailStatus().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			r := a.Recipes.Detail()
			if r == nil {
				return fmt.Errorf("recipe not found")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r.Name)
			if r.Category != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "分類: %s\n", r.Category)
			}
			if r.Favorite {
				fmt.Fprintln(cmd.OutOrStdout(), "已收藏")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "食材:")
			for _, ing := range r.Ingredients {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", ing)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "步驟:")
			for i, step := range recipe.SplitSteps(r.Instructions) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, step)
			}
			return nil
		},
	}
}

// newAddCommand 新增食譜
func newAddCommand(app func() *App) *cobra.Command {
	var draft recipe.Recipe

	cmd := &cobra.Command{
		Use:   "add",
		Short: "新增食譜",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Recipes.Add(cmd.Context(), draft)
			if msg := a.Recipes.AddStatus().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}

			list := a.Recipes.List()
			created := list[len(list)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "食譜名稱")
	cmd.Flags().StringArrayVar(&draft.Ingredients, "ingredient", nil, "食材（可重複）")
	cmd.Flags().StringVar(&draft.Instructions, "instructions", "", "做法")
	cmd.Flags().StringVar(&draft.ImageURL, "image-url", "", "圖片網址")
	cmd.Flags().StringVar(&draft.Category, "category", "", "分類")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("instructions")

	return cmd
}

// newUpdateCommand 部分更新：只送出有指定的旗標
func newUpdateCommand(app func() *App) *cobra.Command {
	var (
		name         string
		ingredients  []string
		instructions string
		imageURL     string
		category     string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "更新食譜",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u recipe.Update
			if cmd.Flags().Changed("name") {
				u.Name = &name
			}
			if cmd.Flags().Changed("ingredient") {
				u.Ingredients = &ingredients
			}
			if cmd.Flags().Changed("instructions") {
				u.Instructions = &instructions
			}
			if cmd.Flags().Changed("image-url") {
				u.ImageURL = &imageURL
			}
			if cmd.Flags().Changed("category") {
				u.Category = &category
			}

			a := app()
			a.Recipes.Update(cmd.Context(), args[0], u)
			if msg := a.Recipes.UpdateStatus().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "食譜名稱")
	cmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "食材（可重複，整組取代）")
	cmd.Flags().StringVar(&instructions, "instructions", "", "做法")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "圖片網址")
	cmd.Flags().StringVar(&category, "category", "", "分類")

	return cmd
}

// newDeleteCommand 刪除食譜
func newDeleteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "刪除食譜",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Recipes.Delete(cmd.Context(), args[0])
			if msg := a.Recipes.DeleteStatus().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

// newFavoriteCommand 本地收藏切換，不經網路
func newFavoriteCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "切換收藏",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Recipes.ToggleFavorite(cmd.Context(), args[0])

			for _, r := range a.Recipes.List() {
				if r.ID == args[0] {
					if r.Favorite {
						fmt.Fprintln(cmd.OutOrStdout(), "favorited")
					} else {
						fmt.Fprintln(cmd.OutOrStdout(), "unfavorited")
					}
					return nil
				}
			}
			return fmt.Errorf("recipe not found in local list; run `kitchen list` first")
		},
	}
}
