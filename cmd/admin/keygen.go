package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukikurage/team-work-tracker/internal/utils"
)

func makeKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a random value for TEAM_CRYPTO_SECRET_KEY or TEAM_SERVER_SESSION_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := utils.GenerateSecretKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
