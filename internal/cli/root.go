package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/listingadmin/listing_admin/internal/config"
)

var (
	envFiles []string
	port     string
)

var rootCmd = &cobra.Command{
	Use:          "listing-admin",
	Short:        "Admin dashboard for the catalog API",
	Long:         "Listing Admin serves a small dashboard to manage catalog categories, products and product images through the catalog REST API",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load instead of ./.env")
	rootCmd.PersistentFlags().StringVar(&port, "port", "", "listen port (overrides PORT)")
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	return config.Load(config.Options{EnvFiles: envFiles, Port: port})
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
