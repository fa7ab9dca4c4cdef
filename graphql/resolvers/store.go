package resolvers

import (
	"context"

	gqlmodels "portal.GO/graphql/models"
	entity "portal.GO/model/entity"
	catalogService "portal.GO/service/catalog"
)

// Stores runs the launcher query pipeline over the cached snapshot. A stale
// snapshot is served as-is while a background refresh is kicked off.
func (r *Resolver) Stores(ctx context.Context, query string) (*gqlmodels.StoreSearch, error) {
	status := r.refresh().EnsureFresh(r.brandKey)

	merchants, err := r.catalog().Snapshot(r.brandKey)
	if err != nil {
		return nil, err
	}
	favorites, err := r.favorites().Map(r.brandKey)
	if err != nil {
		return nil, err
	}

	ranked := catalogService.Select(query, favorites, merchants)
	stores := make([]*gqlmodels.Store, 0, len(ranked))
	for i := range ranked {
		stores = append(stores, storeModel(&ranked[i], favorites[ranked[i].MerchantID]))
	}

	return &gqlmodels.StoreSearch{
		Brand:    r.brandKey,
		Updating: status != catalogService.Fresh,
		Total:    int32(len(stores)),
		Stores:   stores,
	}, nil
}

// Store looks up a single merchant by its upstream ID. Nil when the snapshot
// has no such merchant.
func (r *Resolver) Store(ctx context.Context, id string) (*gqlmodels.Store, error) {
	merchants, err := r.catalog().Snapshot(r.brandKey)
	if err != nil {
		return nil, err
	}
	for i := range merchants {
		if merchants[i].MerchantID == id {
			fav := r.favorites().IsFavorite(r.brandKey, id)
			return storeModel(&merchants[i], fav), nil
		}
	}
	return nil, nil
}

func storeModel(m *entity.Merchant, favorite bool) *gqlmodels.Store {
	cats := m.CategoryNames()
	if cats == nil {
		cats = []string{}
	}
	return &gqlmodels.Store{
		ID:              m.MerchantID,
		Name:            m.Name,
		ClickURL:        m.ClickURL,
		Subtitle:        catalogService.Subtitle(m, favorite),
		Categories:      cats,
		RebateValue:     m.RebateValue,
		RebateCurrency:  m.RebateCurrency,
		Elevated:        m.IsElevated,
		BonusPercentage: m.BonusPercentage,
		DirectMerchant:  m.IsDirect,
		TracksMobile:    m.TracksMobile,
		Favorite:        favorite,
	}
}
