package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

var checkTimeout = 10 * time.Second

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the catalog API answers",
	Long:  "Lists categories once against the configured API base URL and prints the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogger(cfg.Env)

		backend := service.NewBackendService(catalog.NewClient(catalog.Config{BaseURL: cfg.Backend.BaseURL}), cfg.Backend.BaseURL)

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()
		checkErr := backend.Check(ctx)

		out, err := json.MarshalIndent(backend.Status(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		if checkErr != nil {
			return fmt.Errorf("catalog API unreachable: %w", checkErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
