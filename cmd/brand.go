package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portal.GO/config"
	stateRepo "portal.GO/model/repository/state"
)

var brandListCmd = &cobra.Command{
	Use:   "brand:list",
	Short: "List the supported shopping portals",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		current := stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
		for _, key := range config.BrandKeys() {
			b, _ := config.GetBrand(key)
			marker := " "
			if key == current {
				marker = "*"
			}
			fmt.Printf("%s %-10s %s (%s)\n", marker, key, b.Name, b.ShopName)
		}
	},
}

var brandSetCmd = &cobra.Command{
	Use:   "brand:set <brand>",
	Short: "Select the active shopping portal",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		brandKey := args[0]
		b, err := config.GetBrand(brandKey)
		if err != nil {
			// unknown brand: selection and catalog are left unchanged
			fmt.Printf("Unknown brand %q. Known brands: %v\n", brandKey, config.BrandKeys())
			return
		}
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		if err := stateRepo.NewStateRepository(db).SetCurrentBrand(brandKey); err != nil {
			fmt.Printf("Saving brand failed: %v\n", err)
			return
		}
		fmt.Printf("Active brand is now %s (%s). Run stores:update to fetch its catalog.\n", b.Name, b.ShopName)
	},
}

func init() {
	rootCmd.AddCommand(brandListCmd)
	rootCmd.AddCommand(brandSetCmd)
}
