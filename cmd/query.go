package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	favoriteRepo "portal.GO/model/repository/favorite"
	stateRepo "portal.GO/model/repository/state"
	catalogService "portal.GO/service/catalog"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the cached merchant catalog",
	Long: `Search the cached merchant catalog of the active brand.

Tokens starting with ':' filter instead of searching:
  :fav   only favorites
  :prm   only elevated rebates, ranked by bonus percentage`,
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}
		config.LoadAppConfig()

		state := stateRepo.NewStateRepository(db)
		brandKey := state.CurrentBrand(config.DefaultBrand)

		// stale catalogs refresh in a detached process; this invocation
		// serves whatever is cached right now
		refresher := catalogService.NewRefreshService(db)
		refresher.SetLauncher(catalogService.DetachedLauncher())
		status := refresher.EnsureFresh(brandKey)

		stores := catalogRepo.NewCatalogRepository(db)
		merchants, err := stores.Snapshot(brandKey)
		if err != nil {
			fmt.Printf("Reading catalog failed: %v\n", err)
			return
		}
		favs, err := favoriteRepo.NewFavoriteRepository(db).Map(brandKey)
		if err != nil {
			fmt.Printf("Reading favorites failed: %v\n", err)
			return
		}

		queries := catalogService.NewQueryService(filepath.Join(config.AppConfig.DataDir, "logos"))
		results := queries.Query(strings.Join(args, " "), favs, merchants)

		if queryJSON {
			out := map[string]interface{}{
				"brand":    brandKey,
				"updating": status != catalogService.Fresh,
				"results":  results,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetEscapeHTML(false)
			_ = enc.Encode(out)
			return
		}

		if status != catalogService.Fresh {
			fmt.Println("Updating stores...")
		}
		if len(merchants) == 0 {
			fmt.Println("No stores cached yet. Run: portal stores:update")
			return
		}
		if len(results) == 0 {
			fmt.Println("No stores matched your criteria")
			return
		}
		for _, r := range results {
			fmt.Printf("%s\n    %s\n    %s\n", r.Title, r.Subtitle, r.Arg)
		}
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Emit launcher-ready JSON instead of text")
	rootCmd.AddCommand(queryCmd)
}
