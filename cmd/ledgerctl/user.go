package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/postal_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/postal_ledger/internal/core/ports/services"
	"github.com/SscSPs/postal_ledger/internal/dto"
	"github.com/spf13/cobra"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(userCreateCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var username, password, name, role string
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a staff account",
		Example: `  ledgerctl user create --username ana --password 's3cret-pass' --name "Ana Lima" --role BACK_OFFICE`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			staffRole := domain.StaffRole(strings.ToUpper(strings.TrimSpace(role)))
			if !staffRole.IsValid() {
				return fmt.Errorf("unknown role %q, use FRONT_DESK, BACK_OFFICE or ADMIN", role)
			}
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				user, err := svc.Auth.CreateStaffUser(cmd.Context(), username, password, name, staffRole)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToStaffUserResponse(user))
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (min 8 characters)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleFrontDesk), "FRONT_DESK, BACK_OFFICE or ADMIN")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
