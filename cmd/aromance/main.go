package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/config"
	"github.com/example/aromance/internal/logger"
)

var version = "dev"

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "aromance",
		Short: "Fragrance consultation and recommendation engine",
		Long: `aromance runs a short fragrance consultation, stores the resulting profile
and ranks a product catalog against it with an explanation for every pick.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(logger.Options{
				Environment: cfg.Environment(),
				Level:       cfg.LogLevel,
				Output:      cmd.ErrOrStderr(),
			})
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(recommendCmd(a))
	root.AddCommand(consultCmd(a))
	root.AddCommand(catalogCmd(a))
	root.AddCommand(profilesCmd(a))
	root.AddCommand(inventoryCmd(a))

	return root, a
}

// execute runs root and releases every backend a opened, even when the
// command fails.
func execute(ctx context.Context, root *cobra.Command, a *app) (err error) {
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root, a := newRootCmd()
	err := execute(ctx, root, a)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
