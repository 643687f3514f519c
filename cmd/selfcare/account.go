package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selfcare/selfcare/internal/domain/account"
	"github.com/selfcare/selfcare/internal/platform/apperr"
)

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := account.NewService(a.rest, a.tokens)
			msg, err := svc.Login(cmd.Context(), username, password)
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func registerCmd() *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			svc := account.NewService(a.rest, a.tokens)
			msg, err := svc.Register(cmd.Context(), username, password, email)
			if err != nil {
				fmt.Println(apperr.Message(err))
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := account.NewService(a.rest, a.tokens).Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}
