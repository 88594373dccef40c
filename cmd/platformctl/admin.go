package main

import (
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage platform administrators",
}

var adminRevoke bool

var adminGrantCmd = &cobra.Command{
	Use:   "grant <email>",
	Short: "Grant (or with --revoke, remove) platform admin access",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		user, err := rt.services.Admin().SetPlatformAdmin(cmd.Context(), nil, args[0], !adminRevoke)
		if err != nil {
			return err
		}
		cmd.Printf("%s platform_admin=%t\n", user.Email, user.IsPlatformAdmin)
		return nil
	},
}

func init() {
	adminGrantCmd.Flags().BoolVar(&adminRevoke, "revoke", false, "remove admin access instead of granting it")
	adminCmd.AddCommand(adminGrantCmd)
	rootCmd.AddCommand(adminCmd)
}
