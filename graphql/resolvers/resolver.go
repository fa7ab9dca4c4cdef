package resolvers

import (
	"gorm.io/gorm"

	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	favoriteRepo "portal.GO/model/repository/favorite"
	stateRepo "portal.GO/model/repository/state"
	catalogService "portal.GO/service/catalog"
)

// Resolver answers Query and Mutation fields for one request, pinned to one
// brand. Methods live in store.go and brand.go.
type Resolver struct {
	db       *gorm.DB
	brandKey string
}

// NewResolver builds a per-request resolver. brandKey may be empty; the
// stored current brand is used then.
func NewResolver(db *gorm.DB, brandKey string) *Resolver {
	if brandKey == "" {
		brandKey = stateRepo.NewStateRepository(db).CurrentBrand(config.DefaultBrand)
	}
	return &Resolver{db: db, brandKey: brandKey}
}

func (r *Resolver) catalog() *catalogRepo.CatalogRepository {
	return catalogRepo.NewCatalogRepository(r.db)
}

func (r *Resolver) favorites() *favoriteRepo.FavoriteRepository {
	return favoriteRepo.NewFavoriteRepository(r.db)
}

func (r *Resolver) state() *stateRepo.StateRepository {
	return stateRepo.NewStateRepository(r.db)
}

func (r *Resolver) refresh() *catalogService.RefreshService {
	return catalogService.NewRefreshService(r.db)
}
