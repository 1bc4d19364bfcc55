package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/errx"
	"github.com/example/aromance/internal/logger"
)

func inventoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Check stock health, restock alerts and reservations",
	}

	cmd.AddCommand(inventoryStatusCmd(a))
	cmd.AddCommand(inventoryAlertsCmd(a))
	cmd.AddCommand(inventoryReserveCmd(a))
	cmd.AddCommand(inventoryReleaseCmd(a))
	cmd.AddCommand(inventorySweepCmd(a))

	return cmd
}

func inventoryStatusCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Classify the stock of every tracked product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.inventoryService(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.Status(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderStock(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func inventoryAlertsCmd(a *app) *cobra.Command {
	var (
		notify bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "List products that need restocking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.inventoryService(cmd.Context())
			if err != nil {
				return err
			}
			alerts, err := svc.Alerts(cmd.Context(), notify)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), alerts)
			}
			renderAlerts(cmd.OutOrStdout(), alerts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&notify, "notify", false, "send the alerts to the Telegram admin chat")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the alerts as JSON")

	return cmd
}

func inventoryReserveCmd(a *app) *cobra.Command {
	var (
		userID   string
		quantity int
	)

	cmd := &cobra.Command{
		Use:   "reserve PRODUCT_ID",
		Short: "Hold units of a product for a user for one hour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.inventoryService(cmd.Context())
			if err != nil {
				return err
			}
			r, err := svc.Reserve(cmd.Context(), args[0], userID, quantity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Reserved "+strconv.Itoa(r.Quantity)+" of "+r.ProductID)+
				" "+BoldStyle.Render(r.ID.String())+
				SubtleStyle.Render(" until "+r.ExpiresAt.Local().Format("15:04")))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user holding the reservation")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "units to hold")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func inventoryReleaseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "release RESERVATION_ID",
		Short: "Return the units held by a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return errx.Configf("invalid reservation id %q", args[0])
			}
			svc, err := a.inventoryService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Release(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Released "+id.String()))
			return nil
		},
	}
}

func inventorySweepCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Release every lapsed reservation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.inventoryService(cmd.Context())
			if err != nil {
				return err
			}
			released, err := svc.ReleaseExpired(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info().Int("released", released).Msg("reservation sweep finished")
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("Released %d lapsed reservations", released)))
			return nil
		},
	}
}
