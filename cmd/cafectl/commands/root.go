package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/HSouheill/coffee_backend/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// Global flags
	mongoURI string
	dbName   string
	verbose  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cafectl",
	Short: "Maintenance tasks for the coffee shop API",
	Long: `cafectl bootstraps and maintains the coffee shop database.

Connection settings come from MONGODB_URI and DB_NAME (a local .env file is read
when present) and can be overridden with --mongo-uri and --db.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (defaults to MONGODB_URI)")
	rootCmd.PersistentFlags().StringVar(&dbName, "db", "", "Database name (defaults to DB_NAME)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func newLogger() *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}
	return zap.NewNop()
}

// connect opens the database named by the flags or the environment.
// The returned func disconnects the client.
func connect(ctx context.Context, logger *zap.Logger) (*mongo.Database, func(), error) {
	cfg := config.LoadDatabase()
	if mongoURI != "" {
		cfg.MongoURI = mongoURI
	}
	if dbName != "" {
		cfg.DBName = dbName
	}

	client, err := config.ConnectDB(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeFn := func() {
		_ = client.Disconnect(context.Background())
	}
	return client.Database(cfg.DBName), closeFn, nil
}
