package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
)

var reinitCmd = &cobra.Command{
	Use:   "reinit",
	Short: "Reinitialize all persisted state",
	Long:  "CAUTION: deletes all cached stores, favorites and the brand selection.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := catalogRepo.NewCatalogRepository(db).Reinitialize(); err != nil {
			fmt.Printf("Reinitialize failed: %v\n", err)
			return
		}
		fmt.Println("Workflow reinitialized")
	},
}

func init() {
	rootCmd.AddCommand(reinitCmd)
}
