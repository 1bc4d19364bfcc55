package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/aromance/internal/catalog"
	"github.com/example/aromance/internal/database"
	"github.com/example/aromance/internal/utils"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed the product catalog",
	}

	cmd.AddCommand(catalogListCmd(a))
	cmd.AddCommand(catalogSeedCmd(a))

	return cmd
}

func catalogListCmd(a *app) *cobra.Command {
	var (
		asJSON      bool
		page, limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the configured catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.catalog(cmd.Context())
			if err != nil {
				return err
			}
			products, err := store.Products(cmd.Context())
			if err != nil {
				return err
			}
			if page > 0 || limit > 0 {
				p := utils.ParsePagination(page, limit)
				start, end := p.Bounds(len(products))
				products = products[start:end]
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			renderCatalog(cmd.OutOrStdout(), products)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")
	cmd.Flags().IntVar(&page, "page", 0, "page number, starting at 1")
	cmd.Flags().IntVar(&limit, "limit", 0, "products per page (default 20 when paging)")

	return cmd
}

func catalogSeedCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the embedded (or a file) catalog into Postgres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				source *catalog.Static
				err    error
			)
			if file != "" {
				source, err = catalog.LoadFile(file)
			} else {
				source, err = catalog.Embedded()
			}
			if err != nil {
				return err
			}

			db, err := a.postgres(ctx)
			if err != nil {
				return err
			}
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}

			products, err := source.Products(ctx)
			if err != nil {
				return err
			}
			if err := catalog.NewPostgresStore(db).Seed(ctx, products); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Seeded products: ")+BoldStyle.Render(strconv.Itoa(len(products))))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON catalog to seed instead of the embedded one")

	return cmd
}
