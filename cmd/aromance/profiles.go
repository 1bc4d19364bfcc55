package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/logger"
)

func profilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Maintain stored consultation sessions",
	}

	cmd.AddCommand(profilesSweepCmd(a))

	return cmd
}

func profilesSweepCmd(a *app) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Delete sessions not updated within the TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl <= 0 {
				ttl = a.cfg.ProfileTTL
			}
			repo, err := a.sessions(cmd.Context())
			if err != nil {
				return err
			}
			removed, err := repo.DeleteExpired(cmd.Context(), ttl)
			if err != nil {
				return err
			}

			logger.Info().Int("removed", removed).Dur("ttl", ttl).Msg("session sweep finished")
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("Removed %d sessions older than %s", removed, ttl)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 0, "inactivity window (default AROMANCE_PROFILE_TTL)")

	return cmd
}

