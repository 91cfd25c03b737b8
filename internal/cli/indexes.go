package cli

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/config"
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/repository"
)

// NewEnsureIndexesCmd builds the CLI subcommand that creates the unique
// identity indexes. Run once against a new deployment; serve also ensures
// them at startup.
func NewEnsureIndexesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the unique submission indexes on the assessments collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ensureIndexes(cmd.Context(), *configPath)
		},
	}
}

func ensureIndexes(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client, err := repository.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())
	log.Println("Connected to MongoDB")

	if err := repository.EnsureIndexes(ctx, client.Database(cfg.Mongo.Database)); err != nil {
		return err
	}
	log.Println("Indexes created")
	return nil
}
