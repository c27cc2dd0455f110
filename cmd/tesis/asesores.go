package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Glooskovint/TesisAssistantMVP/internal/advisor"
	"github.com/Glooskovint/TesisAssistantMVP/internal/config"
	"github.com/Glooskovint/TesisAssistantMVP/internal/render"
	"github.com/Glooskovint/TesisAssistantMVP/internal/storage"
)

func asesoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asesores [búsqueda]",
		Short: "List thesis advisors",
		Long:  "List the advisor directory, optionally filtered by a fuzzy search over name and specialty.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			advisors := catalog.All()
			if len(args) > 0 {
				advisors = catalog.Search(strings.Join(args, " "))
			}

			fmt.Print(render.New(pretty).Advisors(advisors))
			return nil
		},
	}
}

// loadCatalog prefers the stored roster so local edits show up, falling back
// to the seed when the database is unavailable.
func loadCatalog(ctx context.Context) (*advisor.Catalog, error) {
	store, err := storage.New(config.GetPaths().Data)
	if err != nil {
		return advisor.New(), nil
	}
	defer store.Close()

	if err := store.SeedAdvisors(ctx, advisor.Seed()); err != nil {
		return advisor.New(), nil
	}
	stored, err := store.ListAdvisors(ctx)
	if err != nil || len(stored) == 0 {
		return advisor.New(), nil
	}
	return advisor.New(stored...), nil
}
