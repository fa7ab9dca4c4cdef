package jobs

import (
	"context"
	"log"

	"portal.GO/config"
	stateRepo "portal.GO/model/repository/state"
	catalogService "portal.GO/service/catalog"
	"portal.GO/cron"
)

func init() {
	cron.Register("catalogrefreshjob", "@daily", CatalogRefreshJob)
}

// CatalogRefreshJob refreshes the active brand's merchant catalog. With an
// explicit brand key argument it refreshes that brand instead.
func CatalogRefreshJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("catalogrefreshjob: db: %v", err)
		return
	}

	brandKey := ""
	if len(args) > 0 {
		brandKey = args[0]
	}
	if brandKey == "" {
		brandKey = stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
	}

	svc := catalogService.NewRefreshService(db)
	if err := svc.Refresh(context.Background(), brandKey); err != nil {
		log.Printf("catalogrefreshjob: %v", err)
	}
}
