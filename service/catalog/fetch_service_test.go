package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal.GO/config"
)

var testBrand = config.Brand{
	Key:       "american",
	Name:      "American Airlines",
	BrandID:   "9",
	AppKey:    "key",
	AppID:     "id",
	URL:       "https://www.aadvantageeshopping.com",
	SectionID: "10161",
}

const sampleResponse = `{
	"response": [
		{
			"id": 4711,
			"name": "Apple",
			"clickUrl": "https://example.com/click/4711",
			"rebate": {"value": "3", "currency": "miles/$"},
			"categories": [{"name": "Electronics"}, {"name": "Computers"}],
			"logoUrls": {"_120x60": "https://img.example.com/4711.png"},
			"isDirect": 1,
			"flags": {"tracksMobile": 0}
		},
		{
			"id": "88",
			"name": "Target",
			"clickUrl": "https://example.com/click/88",
			"rebate": {
				"value": 6,
				"currency": "miles/$",
				"isElevation": true,
				"originalValue": "2",
				"originalCurrency": "miles/$"
			}
		}
	]
}`

func TestFetch_ParsesMerchants(t *testing.T) {
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"brand_id":   r.URL.Query().Get("brand_id"),
			"section_id": r.URL.Query().Get("section_id"),
			"sort_by":    r.URL.Query().Get("sort_by"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer ts.Close()

	snap, err := NewFetchServiceWithURL(ts.URL).Fetch(context.Background(), testBrand)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if snap.BrandKey != "american" {
		t.Errorf("BrandKey = %q", snap.BrandKey)
	}
	if len(snap.Merchants) != 2 {
		t.Fatalf("got %d merchants, want 2", len(snap.Merchants))
	}

	if gotQuery["brand_id"] != "9" || gotQuery["section_id"] != "10161" || gotQuery["sort_by"] != "name" {
		t.Errorf("request query = %v", gotQuery)
	}

	apple := snap.Merchants[0]
	if apple.MerchantID != "4711" {
		t.Errorf("numeric id not normalized: %q", apple.MerchantID)
	}
	if !apple.IsDirect {
		t.Error("isDirect 1 should decode as true")
	}
	if apple.TracksMobile {
		t.Error("tracksMobile 0 should decode as false")
	}
	if apple.LogoURL != "https://img.example.com/4711.png" {
		t.Errorf("LogoURL = %q", apple.LogoURL)
	}
	if cats := apple.CategoryNames(); len(cats) != 2 || cats[0] != "Electronics" {
		t.Errorf("categories = %v", cats)
	}
	if apple.IsElevated || apple.BonusPercentage != 0 {
		t.Errorf("non-elevated merchant got bonus %v", apple.BonusPercentage)
	}

	target := snap.Merchants[1]
	if target.MerchantID != "88" || target.RebateValue != "6" {
		t.Errorf("string/number mix not normalized: id %q value %q", target.MerchantID, target.RebateValue)
	}
	if !target.IsElevated {
		t.Fatal("isElevation not decoded")
	}
	if target.BonusPercentage != 200 {
		t.Errorf("BonusPercentage = %v, want 200", target.BonusPercentage)
	}
}

func TestFetch_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewFetchServiceWithURL(ts.URL).Fetch(context.Background(), testBrand)
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed", err)
	}
}

func TestFetch_EmptyEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": []}`))
	}))
	defer ts.Close()

	_, err := NewFetchServiceWithURL(ts.URL).Fetch(context.Background(), testBrand)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
	// a malformed response is one kind of fetch failure
	if !errors.Is(err, ErrFetchFailed) {
		t.Fatalf("err = %v, want ErrFetchFailed via ErrMalformedResponse", err)
	}
}

func TestFetch_BrokenJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer ts.Close()

	_, err := NewFetchServiceWithURL(ts.URL).Fetch(context.Background(), testBrand)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestFetch_MerchantMissingName(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": [{"id": 1}]}`))
	}))
	defer ts.Close()

	_, err := NewFetchServiceWithURL(ts.URL).Fetch(context.Background(), testBrand)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestBonusPercentage(t *testing.T) {
	cases := []struct {
		name              string
		elevated          bool
		value, original   string
		want              float64
	}{
		{"not elevated", false, "6", "2", 0},
		{"tripled", true, "6", "2", 200},
		{"half again", true, "3", "2", 50},
		{"percent signs", true, "10%", "5%", 100},
		{"zero baseline", true, "6", "0", 0},
		{"empty baseline", true, "6", "", 0},
		{"garbage value", true, "lots", "2", 0},
	}
	for _, c := range cases {
		if got := BonusPercentage(c.elevated, c.value, c.original); got != c.want {
			t.Errorf("%s: BonusPercentage = %v, want %v", c.name, got, c.want)
		}
	}
}
