package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSignupCommand 註冊新帳號
func newSignupCommand(app func() *App) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "註冊帳號",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Session.Signup(cmd.Context(), name, email, password)
			if msg := a.Session.Status().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			a.Client.SetToken(a.Session.Token())
			fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s\n", a.Session.User().Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "顯示名稱")
	cmd.Flags().StringVar(&email, "email", "", "信箱")
	cmd.Flags().StringVar(&password, "password", "", "密碼")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// newLoginCommand 登入
func newLoginCommand(app func() *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "登入",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Session.Login(cmd.Context(), email, password)
			if msg := a.Session.Status().Err(); msg != "" {
				return fmt.Errorf("%s", msg)
			}
			a.Client.SetToken(a.Session.Token())
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", a.Session.User().Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "信箱")
	cmd.Flags().StringVar(&password, "password", "", "密碼")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

// newLogoutCommand 登出並清除持久會話
func newLogoutCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "登出",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			a.Session.Logout(cmd.Context())
			a.Client.SetToken("")
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
