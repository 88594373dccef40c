package main

import (
	"github.com/spf13/cobra"

	"switchyard.app/platform/internal/model"
)

var inviteCmd = &cobra.Command{
	Use:   "invite",
	Short: "Manage organization invitations",
}

var inviteRole string

var inviteCreateCmd = &cobra.Command{
	Use:   "create <org-id> <email>",
	Short: "Invite someone to an organization and print the invite link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, err := parseID(args[0])
		if err != nil {
			return err
		}
		role, err := model.ParseRole(inviteRole)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		inv, inviteURL, err := rt.services.Invitations().Create(cmd.Context(), orgID, args[1], role, nil)
		if err != nil {
			return err
		}
		cmd.Printf("invitation %d for %s (%s), expires %s\n%s\n",
			inv.ID, inv.Email, inv.Role, inv.ExpiresAt.Format("2006-01-02 15:04 MST"), inviteURL)
		return nil
	},
}

func init() {
	inviteCreateCmd.Flags().StringVar(&inviteRole, "role", string(model.RoleMember), "role granted on acceptance")
	inviteCmd.AddCommand(inviteCreateCmd)
	rootCmd.AddCommand(inviteCmd)
}
