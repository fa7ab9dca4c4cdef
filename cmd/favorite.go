package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"portal.GO/config"
	favoriteRepo "portal.GO/model/repository/favorite"
	stateRepo "portal.GO/model/repository/state"
)

var favoriteByID string

var favoriteCmd = &cobra.Command{
	Use:   "favorite [click-url]",
	Short: "Toggle a store's favorite flag",
	Long:  "Toggle a store's favorite flag by click URL (the launcher action payload) or by id with --id.",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		brandKey := stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
		favorites := favoriteRepo.NewFavoriteRepository(db)

		if favoriteByID != "" {
			flag, err := favorites.Toggle(brandKey, favoriteByID)
			if err != nil {
				fmt.Printf("Toggle failed: %v\n", err)
				return
			}
			printToggle(favoriteByID, flag)
			return
		}

		if len(args) == 0 {
			fmt.Println("Provide a click URL or --id")
			return
		}
		url := strings.TrimSpace(args[0])
		m, flag, err := favorites.ToggleByURL(brandKey, url)
		if err != nil {
			if errors.Is(err, favoriteRepo.ErrNotFound) {
				fmt.Println("Could not find that store")
				return
			}
			fmt.Printf("Toggle failed: %v\n", err)
			return
		}
		printToggle(m.Name, flag)
	},
}

func printToggle(name string, flag bool) {
	if flag {
		fmt.Printf("%s set as favorite\n", name)
	} else {
		fmt.Printf("%s unset as favorite\n", name)
	}
}

func init() {
	favoriteCmd.Flags().StringVar(&favoriteByID, "id", "", "Merchant id to toggle")
	rootCmd.AddCommand(favoriteCmd)
}
