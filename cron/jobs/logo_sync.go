package jobs

import (
	"context"
	"log"
	"path/filepath"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	stateRepo "portal.GO/model/repository/state"
	logoService "portal.GO/service/logo"
	"portal.GO/cron"
)

func init() {
	cron.Register("logosyncjob", "@daily", LogoSyncJob)
}

// LogoSyncJob downloads missing merchant logos for the active brand.
func LogoSyncJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("logosyncjob: db: %v", err)
		return
	}
	config.LoadAppConfig()

	brandKey := stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
	merchants, err := catalogRepo.NewCatalogRepository(db).Snapshot(brandKey)
	if err != nil {
		log.Printf("logosyncjob: snapshot: %v", err)
		return
	}

	svc := logoService.NewLogoService(filepath.Join(config.AppConfig.DataDir, "logos"))
	res, err := svc.Sync(context.Background(), merchants)
	if err != nil {
		log.Printf("logosyncjob: %v", err)
		return
	}
	log.Printf("logosyncjob: %d downloaded, %d skipped, %d failed", res.Downloaded, res.Skipped, res.Failed)
}
