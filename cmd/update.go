package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	stateRepo "portal.GO/model/repository/state"
	catalogService "portal.GO/service/catalog"
)

var updateBrand string

var updateCmd = &cobra.Command{
	Use:   "stores:update",
	Short: "Refresh the merchant catalog from the portal API",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		brandKey := updateBrand
		if brandKey == "" {
			brandKey = stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
		}
		if _, err := config.GetBrand(brandKey); err != nil {
			fmt.Printf("Unknown brand: %s\n", brandKey)
			return
		}

		svc := catalogService.NewRefreshService(db)
		if err := svc.Refresh(context.Background(), brandKey); err != nil {
			fmt.Printf("Update failed: %v\n", err)
			return
		}
		merchants, _ := catalogRepo.NewCatalogRepository(db).Snapshot(brandKey)
		fmt.Printf("Stores updated: %d merchants for %s\n", len(merchants), brandKey)
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateBrand, "brand", "", "Brand key to refresh (default: active brand)")
	rootCmd.AddCommand(updateCmd)
}
