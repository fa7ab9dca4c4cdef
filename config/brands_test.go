package config

import (
	"errors"
	"sort"
	"testing"
)

func TestGetBrand_Known(t *testing.T) {
	b, err := GetBrand("american")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if b.Key != "american" {
		t.Errorf("Key = %q, want american", b.Key)
	}
	if b.BrandID == "" || b.AppKey == "" || b.AppID == "" || b.URL == "" {
		t.Error("american brand is missing API credentials")
	}
	if b.SectionID == "" {
		t.Error("american brand should pin a section_id")
	}
}

func TestGetBrand_Unknown(t *testing.T) {
	_, err := GetBrand("klingon")
	if !errors.Is(err, ErrInvalidBrand) {
		t.Fatalf("err = %v, want ErrInvalidBrand", err)
	}
}

func TestBrandKeys_SortedAndClosed(t *testing.T) {
	keys := BrandKeys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("BrandKeys not sorted: %v", keys)
	}
	if len(keys) != len(Brands()) {
		t.Errorf("BrandKeys len %d != Brands len %d", len(keys), len(Brands()))
	}
	foundDefault := false
	for _, k := range keys {
		if _, err := GetBrand(k); err != nil {
			t.Errorf("GetBrand(%q): %v", k, err)
		}
		if k == DefaultBrand {
			foundDefault = true
		}
	}
	if !foundDefault {
		t.Errorf("default brand %q not in %v", DefaultBrand, keys)
	}
}

func TestBrands_CopyIsIsolated(t *testing.T) {
	m := Brands()
	m["american"] = Brand{Key: "mutated"}
	b, err := GetBrand("american")
	if err != nil {
		t.Fatalf("GetBrand: %v", err)
	}
	if b.Key != "american" {
		t.Error("mutating the Brands() map leaked into the config")
	}
}
