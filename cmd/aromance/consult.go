package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/consultation"
	"github.com/example/aromance/internal/errx"
)

func consultCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consult",
		Short: "Run a fragrance consultation one answer at a time",
	}

	cmd.AddCommand(consultStartCmd(a))
	cmd.AddCommand(consultAnswerCmd(a))
	cmd.AddCommand(consultShowCmd(a))

	return cmd
}

func (a *app) funnel(cmd *cobra.Command) (*consultation.Funnel, error) {
	repo, err := a.sessions(cmd.Context())
	if err != nil {
		return nil, err
	}
	return consultation.NewFunnel(repo), nil
}

func parseSessionID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errx.Configf("invalid session id %q", raw)
	}
	return id, nil
}

func consultStartCmd(a *app) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Open a new consultation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.funnel(cmd)
			if err != nil {
				return err
			}
			turn, err := f.Start(cmd.Context(), userID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, TitleStyle.Render("Session "+turn.Session.ID.String()))
			renderTurn(w, turn)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user identifier")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func consultAnswerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "answer SESSION TEXT...",
		Short: "Answer the current consultation question",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			f, err := a.funnel(cmd)
			if err != nil {
				return err
			}
			turn, err := f.Answer(cmd.Context(), id, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			renderTurn(cmd.OutOrStdout(), turn)
			return nil
		},
	}
}

func consultShowCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show SESSION",
		Short: "Show the profile collected so far",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSessionID(args[0])
			if err != nil {
				return err
			}
			f, err := a.funnel(cmd)
			if err != nil {
				return err
			}
			session, err := f.Session(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), session)
			}
			renderSession(cmd.OutOrStdout(), session)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the session as JSON")

	return cmd
}
