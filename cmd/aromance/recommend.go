package main

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/models"
	"github.com/example/aromance/internal/recommender"
)

func recommendCmd(a *app) *cobra.Command {
	var (
		sessionID   string
		profilePath string
		limit       int
		standalone  bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the catalog for a completed consultation or a profile file",
		Example: `  aromance recommend --session 5f0c...
  aromance recommend --profile profile.json --standalone`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := a.recommendationService(ctx, a.engineOptions(limit, standalone))
			if err != nil {
				return err
			}

			var result recommender.Result
			if sessionID != "" {
				id, err := uuid.Parse(sessionID)
				if err != nil {
					return errx.Configf("invalid session id %q", sessionID)
				}
				out, err := svc.ForSession(ctx, id)
				if err != nil {
					return err
				}
				result = out.Result
			} else {
				profile, err := readProfile(profilePath)
				if err != nil {
					return err
				}
				result, err = svc.Recommend(ctx, profile)
				if err != nil {
					return err
				}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "completed consultation id")
	cmd.Flags().StringVar(&profilePath, "profile", "", "JSON profile file")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum recommendations (default from AROMANCE_RECOMMEND_LIMIT)")
	cmd.Flags().BoolVar(&standalone, "standalone", false, "use the standalone flow limit of 5")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.MarkFlagsMutuallyExclusive("session", "profile")
	cmd.MarkFlagsOneRequired("session", "profile")

	cmd.AddCommand(recommendHistoryCmd(a))

	return cmd
}

func recommendHistoryCmd(a *app) *cobra.Command {
	var (
		userID string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the recommendations a user was shown after consultations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := a.recommendationService(ctx, a.engineOptions(0, false))
			if err != nil {
				return err
			}
			records, err := svc.History(ctx, userID, limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), records)
			}
			renderHistory(cmd.OutOrStdout(), userID, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id given to consult start")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum records (default 20)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the records as JSON")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func readProfile(path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, errx.New(errx.KindConfig, "read profile", err)
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return models.Profile{}, errx.New(errx.KindConfig, "decode profile", err)
	}
	return profile, nil
}
