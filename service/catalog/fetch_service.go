package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"portal.GO/config"
	entity "portal.GO/model/entity"
)

// ErrFetchFailed covers network errors, non-2xx statuses, and malformed
// envelopes during a catalog refresh. The freshness policy treats all of
// them the same: keep serving the previous snapshot.
var ErrFetchFailed = fmt.Errorf("catalog fetch failed")

// ErrMalformedResponse is a fetch failure where the API answered but the
// expected envelope was missing or empty.
var ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrFetchFailed)

const (
	defaultAPIURL = "https://api.cartera.com/content/v4/merchants"
	fetchLimit    = 2000
	fetchFields   = "name,type,id,clickUrl,synonyms,showRebate,rebate,logoUrls._120x60,relatedActiveMerchants,categories,isDirect,flags"
)

// FetchService pulls a brand's merchant catalog from the remote API and
// normalizes it into the canonical merchant records.
type FetchService struct {
	client *http.Client
	apiURL string
}

func NewFetchService() *FetchService {
	return &FetchService{
		client: &http.Client{Timeout: 30 * time.Second},
		apiURL: defaultAPIURL,
	}
}

// NewFetchServiceWithURL overrides the API endpoint (tests).
func NewFetchServiceWithURL(apiURL string) *FetchService {
	s := NewFetchService()
	s.apiURL = apiURL
	return s
}

// Fetch requests one bounded, name-sorted page of merchants for a brand and
// returns a complete snapshot, never a partial list.
func (s *FetchService) Fetch(ctx context.Context, brand config.Brand) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	q := url.Values{}
	q.Set("brand_id", brand.BrandID)
	q.Set("app_key", brand.AppKey)
	q.Set("app_id", brand.AppID)
	if brand.SectionID != "" {
		q.Set("section_id", brand.SectionID)
	}
	q.Set("limit", strconv.Itoa(fetchLimit))
	q.Set("sort_by", "name")
	q.Set("fields", fetchFields)
	q.Set("include_inactive", "0")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", randomUserAgent())
	req.Header.Set("Origin", brand.URL)
	req.Header.Set("Referer", brand.URL+"/")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	merchants, err := parseMerchants(body)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		BrandKey:    brand.Key,
		RefreshedAt: time.Now(),
		Merchants:   merchants,
	}, nil
}

// envelope is the remote response wrapper: {"response": [ merchant... ]}.
type envelope struct {
	Response []map[string]interface{} `json:"response"`
}

func parseMerchants(body []byte) ([]entity.Merchant, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(env.Response) == 0 {
		return nil, fmt.Errorf("%w: empty merchant list", ErrMalformedResponse)
	}

	merchants := make([]entity.Merchant, 0, len(env.Response))
	for _, raw := range env.Response {
		var am apiMerchant
		if err := decodeMerchant(raw, &am); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if am.ID == "" || am.Name == "" {
			return nil, fmt.Errorf("%w: merchant missing id or name", ErrMalformedResponse)
		}

		m := entity.Merchant{
			MerchantID:       am.ID,
			Name:             am.Name,
			ClickURL:         am.ClickURL,
			RebateValue:      am.Rebate.Value,
			RebateCurrency:   am.Rebate.Currency,
			IsElevated:       am.Rebate.IsElevation,
			OriginalValue:    am.Rebate.OriginalValue,
			OriginalCurrency: am.Rebate.OriginalCurrency,
			IsDirect:         am.IsDirect,
			TracksMobile:     am.Flags.TracksMobile,
			LogoURL:          am.LogoUrls.Thumb,
		}
		m.BonusPercentage = BonusPercentage(m.IsElevated, m.RebateValue, m.OriginalValue)

		names := make([]string, 0, len(am.Categories))
		for _, c := range am.Categories {
			if c.Name != "" {
				names = append(names, c.Name)
			}
		}
		m.SetCategoryNames(names)

		merchants = append(merchants, m)
	}
	return merchants, nil
}

// apiMerchant mirrors the remote merchant object, after decode hooks have
// flattened its mixed numeric/string fields.
type apiMerchant struct {
	ID         string        `mapstructure:"id"`
	Name       string        `mapstructure:"name"`
	ClickURL   string        `mapstructure:"clickUrl"`
	Rebate     apiRebate     `mapstructure:"rebate"`
	Categories []apiCategory `mapstructure:"categories"`
	LogoUrls   apiLogoUrls   `mapstructure:"logoUrls"`
	IsDirect   bool          `mapstructure:"isDirect"`
	Flags      apiFlags      `mapstructure:"flags"`
}

type apiRebate struct {
	Value            string `mapstructure:"value"`
	Currency         string `mapstructure:"currency"`
	IsElevation      bool   `mapstructure:"isElevation"`
	OriginalValue    string `mapstructure:"originalValue"`
	OriginalCurrency string `mapstructure:"originalCurrency"`
}

type apiCategory struct {
	Name string `mapstructure:"name"`
}

type apiLogoUrls struct {
	Thumb string `mapstructure:"_120x60"`
}

type apiFlags struct {
	TracksMobile bool `mapstructure:"tracksMobile"`
}

// numberToStringHook converts numeric JSON values to strings; the API emits
// ids and rebate values as numbers or strings depending on the merchant.
func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

// intToBoolHook accepts the 0/1 flags some brands' responses use.
func intToBoolHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Bool {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return v != 0, nil
		case int64:
			return v != 0, nil
		case float64:
			return int(v) != 0, nil
		}
		return data, nil
	}
}

var merchantDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	intToBoolHook(),
)

func decodeMerchant(raw map[string]interface{}, out *apiMerchant) error {
	cfg := &mapstructure.DecoderConfig{
		DecodeHook: merchantDecodeHook,
		Result:     out,
		TagName:    "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// BonusPercentage is the relative increase of an elevated rebate over its
// baseline, as a percentage. Non-elevated rebates and zero baselines are 0.
func BonusPercentage(isElevated bool, value, originalValue string) float64 {
	if !isElevated {
		return 0
	}
	current, ok := parseRate(value)
	if !ok {
		return 0
	}
	original, ok := parseRate(originalValue)
	if !ok || original == 0 {
		return 0
	}
	return ((current - original) / original) * 100
}

// parseRate reads a rebate rate that may carry a trailing percent sign.
func parseRate(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
