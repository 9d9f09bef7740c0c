package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/docstore"
	"github.com/p-n-ai/taleem/internal/platform/cache"
	"github.com/p-n-ai/taleem/internal/platform/database"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <dir>",
		Short: "Load concept documents into PostgreSQL",
		Long: "seed validates every document under <dir>/<collection> and upserts the valid ones " +
			"into the documents table, then drops the cached concept listing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if url, _ := cmd.Flags().GetString("database-url"); url != "" {
				cfg.Database.URL = url
			}
			force, _ := cmd.Flags().GetBool("force")

			ctx := cmd.Context()
			checked, err := checkDirectory(ctx, args[0], cfg.Store.Collection)
			if err != nil {
				return err
			}

			invalid := 0
			for _, c := range checked {
				if len(c.problems) > 0 {
					invalid++
					slog.Warn("invalid document", "id", c.doc.ID, "path", c.path, "problems", len(c.problems))
				}
			}
			if invalid > 0 && !force {
				return fmt.Errorf("%d invalid documents; run validate for details or pass --force to skip them", invalid)
			}

			db, err := database.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.EnsureSchema(ctx, docstore.Schema); err != nil {
				return err
			}
			store, err := docstore.NewPostgresStore(db.Pool)
			if err != nil {
				return err
			}

			seeded := 0
			for _, c := range checked {
				if len(c.problems) > 0 {
					continue
				}
				if err := store.Upsert(ctx, cfg.Store.Collection, c.doc); err != nil {
					return err
				}
				seeded++
			}

			if cfg.Cache.Enabled {
				c, err := cache.New(ctx, cfg.Cache.URL)
				if err != nil {
					slog.Warn("cache unavailable, listing not invalidated", "error", err)
				} else {
					concept.NewRepository(store,
						concept.WithCollection(cfg.Store.Collection),
						concept.WithListingCache(c, cfg.Cache.ListingTTLDuration()),
					).Invalidate(ctx)
					c.Close()
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d documents into %s (%d skipped)\n", seeded, cfg.Store.Collection, invalid)
			return nil
		},
	}
	cmd.Flags().String("database-url", "", "PostgreSQL URL (overrides LEARN_DATABASE_URL)")
	cmd.Flags().Bool("force", false, "Skip invalid documents instead of aborting")
	return cmd
}
