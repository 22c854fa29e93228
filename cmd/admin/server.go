package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/logger"
	"github.com/yukikurage/team-work-tracker/internal/repository"
	"github.com/yukikurage/team-work-tracker/internal/services"
)

func makeServerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage the team server catalogue",
	}

	cmd.AddCommand(makeServerAddCommand())
	cmd.AddCommand(makeServerListCommand())
	return cmd
}

func serverService(e *env) (*services.TeamServerService, error) {
	db, err := e.connect()
	if err != nil {
		return nil, err
	}
	return services.NewTeamServerService(repository.NewStore(db), e.log), nil
}

func makeServerAddCommand() *cobra.Command {
	var name string
	var url string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			svc, err := serverService(e)
			if err != nil {
				return err
			}

			server, err := svc.CreateServer(cmd.Context(), services.CreateServerInput{
				Name: name,
				URL:  url,
			})
			if err != nil {
				return err
			}

			e.log.Info("Added team server",
				logger.ServerID(server.ID),
				zap.String("name", server.Name),
				zap.String("url", server.URL),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Server name")
	cmd.Flags().StringVar(&url, "url", "", "Server collection URL")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func makeServerListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			svc, err := serverService(e)
			if err != nil {
				return err
			}

			servers, err := svc.ListServers(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, server := range servers {
				fmt.Fprintf(out, "%d\t%s\t%s\n", server.ID, server.Name, server.URL)
			}
			return nil
		},
	}
}
