package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	stateRepo "portal.GO/model/repository/state"
	logoService "portal.GO/service/logo"
)

var logosCmd = &cobra.Command{
	Use:   "logos:update",
	Short: "Download missing store logos",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		config.LoadAppConfig()

		brandKey := stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
		merchants, err := catalogRepo.NewCatalogRepository(db).Snapshot(brandKey)
		if err != nil {
			fmt.Printf("Reading catalog failed: %v\n", err)
			return
		}
		if len(merchants) == 0 {
			fmt.Println("No stores cached yet. Run: portal stores:update")
			return
		}

		svc := logoService.NewLogoService(filepath.Join(config.AppConfig.DataDir, "logos"))
		res, err := svc.Sync(context.Background(), merchants)
		if err != nil {
			fmt.Printf("Logo sync failed: %v\n", err)
			return
		}
		fmt.Printf("Logos updated: %d downloaded, %d skipped, %d failed\n", res.Downloaded, res.Skipped, res.Failed)
	},
}

func init() {
	rootCmd.AddCommand(logosCmd)
}
