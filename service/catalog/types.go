package catalog

import (
	"time"

	entity "portal.GO/model/entity"
)

// Snapshot is a complete catalog fetch result for one brand. It is committed
// or discarded as a whole; there is no partial form.
type Snapshot struct {
	BrandKey    string
	RefreshedAt time.Time
	Merchants   []entity.Merchant
}

// Result is one row of a launcher result list.
type Result struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Arg      string `json:"arg"` // click URL, the action payload
	Icon     string `json:"icon,omitempty"`
}
