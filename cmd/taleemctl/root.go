package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/taleem/internal/concept"
	"github.com/p-n-ai/taleem/internal/docstore"
	"github.com/p-n-ai/taleem/internal/platform/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "taleemctl",
		Short:        "Manage Taleem concept content",
		Long:         "taleemctl checks concept documents against the authoring schema, loads them into PostgreSQL and exports the catalog.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("collection", "", "Collection name (overrides LEARN_STORE_COLLECTION)")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newExportCmd())
	return root
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c, _ := cmd.Flags().GetString("collection"); c != "" {
		cfg.Store.Collection = c
	}
	return cfg, nil
}

type checkedDocument struct {
	doc      docstore.Document
	path     string
	problems []string
}

// checkDirectory loads every document of collection under dir and validates it.
func checkDirectory(ctx context.Context, dir, collection string) ([]checkedDocument, error) {
	fs, err := docstore.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	docs, err := fs.FetchAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	checked := make([]checkedDocument, 0, len(docs))
	for _, doc := range docs {
		problems, err := concept.ValidateDocument(doc.Fields)
		if err != nil {
			return nil, err
		}
		path, _ := fs.Path(collection, doc.ID)
		checked = append(checked, checkedDocument{doc: doc, path: path, problems: problems})
	}
	return checked, nil
}
