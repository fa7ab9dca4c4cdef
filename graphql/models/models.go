package models

// --- Store ---

type Store struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ClickURL        string   `json:"click_url"`
	Subtitle        string   `json:"subtitle"`
	Categories      []string `json:"categories"`
	RebateValue     string   `json:"rebate_value"`
	RebateCurrency  string   `json:"rebate_currency"`
	Elevated        bool     `json:"elevated"`
	BonusPercentage float64  `json:"bonus_percentage"`
	DirectMerchant  bool     `json:"direct_merchant"`
	TracksMobile    bool     `json:"tracks_mobile"`
	Favorite        bool     `json:"favorite"`
}

type StoreSearch struct {
	Brand    string   `json:"brand"`
	Updating bool     `json:"updating"`
	Total    int32    `json:"total"`
	Stores   []*Store `json:"stores"`
}

// --- Brand ---

type Brand struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	ShopName string `json:"shop_name"`
	URL      string `json:"url"`
	Current  bool   `json:"current"`
}

// --- Mutations ---

type ToggleResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
}
