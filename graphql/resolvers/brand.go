package resolvers

import (
	"context"
	"errors"
	"fmt"

	"portal.GO/config"
	gqlmodels "portal.GO/graphql/models"
	favoriteRepo "portal.GO/model/repository/favorite"
)

// Brands lists the supported portals, sorted by key.
func (r *Resolver) Brands(ctx context.Context) ([]*gqlmodels.Brand, error) {
	current := r.state().CurrentBrand(config.DefaultBrand)
	all := config.Brands()
	out := make([]*gqlmodels.Brand, 0, len(all))
	for _, key := range config.BrandKeys() {
		out = append(out, brandModel(all[key], key == current))
	}
	return out, nil
}

// CurrentBrand returns the active portal.
func (r *Resolver) CurrentBrand(ctx context.Context) (*gqlmodels.Brand, error) {
	current := r.state().CurrentBrand(config.DefaultBrand)
	b, err := config.GetBrand(current)
	if err != nil {
		return nil, err
	}
	return brandModel(b, true), nil
}

// SetCurrentBrand switches the active portal. The old brand's snapshot stays
// cached under its own key.
func (r *Resolver) SetCurrentBrand(ctx context.Context, key string) (*gqlmodels.Brand, error) {
	b, err := config.GetBrand(key)
	if err != nil {
		return nil, err
	}
	if err := r.state().SetCurrentBrand(key); err != nil {
		return nil, err
	}
	return brandModel(b, true), nil
}

// ToggleFavorite flips the favorite flag by merchant ID or click URL.
func (r *Resolver) ToggleFavorite(ctx context.Context, id, url *string) (*gqlmodels.ToggleResult, error) {
	switch {
	case id != nil && *id != "":
		flag, err := r.favorites().Toggle(r.brandKey, *id)
		if err != nil {
			return nil, err
		}
		res := &gqlmodels.ToggleResult{ID: *id, Favorite: flag}
		if m, err := r.Store(ctx, *id); err == nil && m != nil {
			res.Name = m.Name
		}
		return res, nil
	case url != nil && *url != "":
		m, flag, err := r.favorites().ToggleByURL(r.brandKey, *url)
		if err != nil {
			if errors.Is(err, favoriteRepo.ErrNotFound) {
				return nil, fmt.Errorf("could not find that store")
			}
			return nil, err
		}
		return &gqlmodels.ToggleResult{ID: m.MerchantID, Name: m.Name, Favorite: flag}, nil
	default:
		return nil, fmt.Errorf("toggleFavorite needs an id or a url")
	}
}

func brandModel(b config.Brand, current bool) *gqlmodels.Brand {
	return &gqlmodels.Brand{
		Key:      b.Key,
		Name:     b.Name,
		ShopName: b.ShopName,
		URL:      b.URL,
		Current:  current,
	}
}
