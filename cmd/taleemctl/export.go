package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/p-n-ai/taleem/internal/export"
	"github.com/p-n-ai/taleem/internal/i18n"
	"github.com/p-n-ai/taleem/internal/platform/storage"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the concept catalog to an Excel workbook",
		Long:  "export reads concepts from the configured store (LEARN_STORE_DRIVER) and writes them to <file>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			langFlag, _ := cmd.Flags().GetString("lang")
			lang, ok := i18n.Parse(langFlag)
			if !ok {
				return fmt.Errorf("unsupported language %q", langFlag)
			}

			ctx := cmd.Context()
			s, err := storage.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			concepts := s.Repository(cfg).List(ctx)

			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating %s: %w", args[0], err)
			}
			if err := export.WriteWorkbook(f, concepts, lang); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d concepts to %s\n", len(concepts), args[0])
			return nil
		},
	}
	cmd.Flags().String("lang", "en", "Language to render titles and quizzes in (en or ur)")
	return cmd
}
