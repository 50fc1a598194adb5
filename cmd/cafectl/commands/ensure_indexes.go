package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/HSouheill/coffee_backend/config"
	"github.com/spf13/cobra"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the collection indexes",
	Long:  `Create the unique and lookup indexes on the admins, menu and gallery collections. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		return runEnsureIndexes(ctx, cmd)
	},
}

func init() {
	rootCmd.AddCommand(ensureIndexesCmd)
}

func runEnsureIndexes(ctx context.Context, cmd *cobra.Command) error {
	logger := newLogger()
	defer logger.Sync()

	db, closeFn, err := connect(ctx, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := config.EnsureIndexes(ctx, db, logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Indexes are up to date")
	return nil
}
