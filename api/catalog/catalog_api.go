package catalog

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"portal.GO/api"
	"portal.GO/config"
	catalogRepo "portal.GO/model/repository/catalog"
	favoriteRepo "portal.GO/model/repository/favorite"
	stateRepo "portal.GO/model/repository/state"
	catalogService "portal.GO/service/catalog"
	logoService "portal.GO/service/logo"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// configCommand is a launcher maintenance action surfaced in the result
// feed when the first query word matches its name.
type configCommand struct {
	name     string
	title    string
	subtitle string
	arg      string
}

var configCommands = []configCommand{
	{"update", "Update Stores", "Refresh the merchant catalog for the current brand", "portal:update"},
	{"logos", "Update Store Logos", "Download missing merchant logos", "portal:logos"},
	{"brand", "Switch Brand", "Change the active shopping portal", "portal:brand"},
	{"reinit", "Reinitialize", "CAUTION: this deletes all stores, favorites and settings", "portal:reinit"},
}

func RegisterCatalogRoutes(apiGroup *echo.Group, db *gorm.DB) {
	stores := catalogRepo.NewCatalogRepository(db)
	favorites := favoriteRepo.NewFavoriteRepository(db)
	state := stateRepo.NewStateRepository(db)
	refresher := catalogService.NewRefreshService(db)
	config.LoadAppConfig()
	queries := catalogService.NewQueryService(filepath.Join(config.AppConfig.DataDir, "logos"))

	currentBrand := func(c echo.Context) string {
		if b := c.QueryParam("brand"); b != "" {
			return b
		}
		return state.CurrentBrand(config.DefaultBrand)
	}

	// GET /api/stores?query=... – ranked result list for the launcher.
	// Never waits on a refresh; serves whatever snapshot is resident.
	apiGroup.GET("/stores", func(c echo.Context) error {
		brandKey := currentBrand(c)
		if _, err := config.GetBrand(brandKey); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		raw := c.QueryParam("query")

		status := refresher.EnsureFresh(brandKey)

		merchants, err := stores.Snapshot(brandKey)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		favs, err := favorites.Map(brandKey)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		results := commandItems(raw)
		results = append(results, queries.Query(raw, favs, merchants)...)

		return c.JSON(http.StatusOK, echo.Map{
			"brand":    brandKey,
			"updating": status != catalogService.Fresh,
			"results":  results,
		})
	})

	// POST /api/stores/refresh – user-issued refresh, bypasses the TTL.
	apiGroup.POST("/stores/refresh", func(c echo.Context) error {
		brandKey := currentBrand(c)
		if _, err := config.GetBrand(brandKey); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := refresher.Refresh(c.Request().Context(), brandKey); err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		merchants, _ := stores.Snapshot(brandKey)
		return c.JSON(http.StatusOK, echo.Map{"brand": brandKey, "stores": len(merchants)})
	})

	// POST /api/favorites/toggle – body {"id": ...} or {"url": ...}.
	apiGroup.POST("/favorites/toggle", func(c echo.Context) error {
		var body struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		brandKey := currentBrand(c)

		switch {
		case body.ID != "":
			flag, err := favorites.Toggle(brandKey, body.ID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusOK, echo.Map{"id": body.ID, "favorite": flag})
		case body.URL != "":
			m, flag, err := favorites.ToggleByURL(brandKey, body.URL)
			if err != nil {
				if errors.Is(err, favoriteRepo.ErrNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"error": "could not find that store"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			return c.JSON(http.StatusOK, echo.Map{"id": m.MerchantID, "name": m.Name, "favorite": flag})
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id or url is required"})
		}
	})

	// GET /api/brands – the known portals plus the active selection.
	apiGroup.GET("/brands", func(c echo.Context) error {
		current := state.CurrentBrand(config.DefaultBrand)
		out := make([]echo.Map, 0)
		for _, key := range config.BrandKeys() {
			b, _ := config.GetBrand(key)
			out = append(out, echo.Map{
				"key":       b.Key,
				"name":      b.Name,
				"shop_name": b.ShopName,
				"url":       b.URL,
				"active":    b.Key == current,
			})
		}
		return c.JSON(http.StatusOK, echo.Map{"current": current, "brands": out})
	})

	// PUT /api/brands/current – switch portals. Unknown keys are rejected
	// and the current selection is left unchanged.
	apiGroup.PUT("/brands/current", func(c echo.Context) error {
		var body struct {
			Brand string `json:"brand"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if _, err := config.GetBrand(body.Brand); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := state.SetCurrentBrand(body.Brand); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"current": body.Brand})
	})

	// POST /api/logos/sync – download missing logos for the current brand.
	apiGroup.POST("/logos/sync", func(c echo.Context) error {
		brandKey := currentBrand(c)
		merchants, err := stores.Snapshot(brandKey)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logos := logoService.NewLogoService(filepath.Join(config.AppConfig.DataDir, "logos"))
		res, err := logos.Sync(c.Request().Context(), merchants)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"downloaded": res.Downloaded,
			"skipped":    res.Skipped,
			"failed":     res.Failed,
		})
	})

	// POST /api/reinit – wipe all persisted state.
	apiGroup.POST("/reinit", func(c echo.Context) error {
		if err := stores.Reinitialize(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "reinitialized"})
	})
}

// commandItems surfaces maintenance commands when the first query word
// matches one of their names closely enough.
func commandItems(raw string) []catalogService.Result {
	phrase, _ := catalogService.ParseQuery(raw)
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil
	}
	first := words[0]
	var items []catalogService.Result
	for _, cmd := range configCommands {
		if catalogService.MatchScore(first, cmd.name) >= 80 {
			items = append(items, catalogService.Result{
				Title:    cmd.title,
				Subtitle: cmd.subtitle,
				Arg:      cmd.arg,
			})
		}
	}
	return items
}
