package config

import (
	"fmt"
	"sort"
)

// ErrInvalidBrand is returned for brand keys outside the known set.
var ErrInvalidBrand = fmt.Errorf("invalid brand")

// Brand is the immutable per-portal configuration: display metadata plus the
// credentials the merchant API expects for that portal.
type Brand struct {
	Key       string
	Name      string
	ShopName  string
	BrandID   string
	AppKey    string
	AppID     string
	URL       string
	SectionID string
	Favicon   string
}

// brands is the closed set of supported shopping portals. All of them sit on
// the same upstream merchant API family, with per-brand credentials.
var brands = map[string]Brand{
	"american": {
		Key:       "american",
		Name:      "American Airlines",
		ShopName:  "AAdvantage",
		BrandID:   "251",
		AppKey:    "9ec260e91abc101aaec68280da6a5487",
		AppID:     "672b9fbb",
		URL:       "https://www.aadvantageeshopping.com",
		SectionID: "10161",
		Favicon:   "icons/brands/aa.png",
	},
	"united": {
		Key:      "united",
		Name:     "United Airlines",
		ShopName: "MileagePlus",
		BrandID:  "227",
		AppKey:   "e890b0f48aa7523311b3218506ee8e8d",
		AppID:    "c5c10c2a",
		URL:      "https://shopping.mileageplus.com",
		Favicon:  "icons/brands/united.png",
	},
	"delta": {
		Key:      "delta",
		Name:     "Delta Air Lines",
		ShopName: "SkyMiles",
		BrandID:  "106",
		AppKey:   "82f17ef5651e834e5d0d1a7081cb455d",
		AppID:    "f3cc4f99",
		URL:      "https://www.skymilesshopping.com",
		Favicon:  "icons/brands/delta.png",
	},
	"alaska": {
		Key:      "alaska",
		Name:     "Alaska Airlines",
		ShopName: "MileagePlan",
		BrandID:  "358",
		AppKey:   "656a63361c344ee3959f9922be8ab4fe",
		AppID:    "5fe54f2a",
		URL:      "https://www.mileageplanshopping.com",
		Favicon:  "icons/brands/alaska.png",
	},
	"southwest": {
		Key:      "southwest",
		Name:     "Southwest Airlines",
		ShopName: "RapidRewards",
		BrandID:  "247",
		AppKey:   "1f5f444ceeb840c9fc14c4a5ca0886d4",
		AppID:    "29d31a15",
		URL:      "https://rapidrewardsshopping.southwest.com",
		Favicon:  "icons/brands/southwest.png",
	},
	"usaa": {
		Key:      "usaa",
		Name:     "USAA",
		ShopName: "MemberShop",
		BrandID:  "137",
		AppKey:   "c2c8a6aa0829a7b3b5030355336942ae",
		AppID:    "7e04dca9",
		URL:      "https://mall.usaa.com",
		Favicon:  "icons/brands/usaa.png",
	},
	"barclays": {
		Key:      "barclays",
		Name:     "Barclays",
		ShopName: "RewardsBoost",
		BrandID:  "356",
		AppKey:   "6ceb21f5a77c78b28382e4cbc838497e",
		AppID:    "8a2f6ddd",
		URL:      "https://www.barclaycardrewardsboost.com",
		Favicon:  "icons/brands/barclays.png",
	},
}

// DefaultBrand is used when no brand has been selected yet.
const DefaultBrand = "american"

// GetBrand returns the configuration for a brand key. Unknown keys are an
// error, never a zero-value fallback.
func GetBrand(key string) (Brand, error) {
	b, ok := brands[key]
	if !ok {
		return Brand{}, fmt.Errorf("%w: %q", ErrInvalidBrand, key)
	}
	return b, nil
}

// BrandKeys returns all known brand keys, sorted.
func BrandKeys() []string {
	keys := make([]string, 0, len(brands))
	for k := range brands {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Brands returns all brand configs keyed by brand key.
func Brands() map[string]Brand {
	out := make(map[string]Brand, len(brands))
	for k, v := range brands {
		out[k] = v
	}
	return out
}
