package graphqlserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"portal.GO/graphql"
	gqlmodels "portal.GO/graphql/models"
	"portal.GO/graphql/registry"
	"portal.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. Per-request resolvers are created
// with the brand pinned from headers/variables.
type RootResolver struct {
	DB *gorm.DB
}

func (r *RootResolver) resolver(ctx context.Context) *resolvers.Resolver {
	return resolvers.NewResolver(r.DB, graphql.BrandFromContext(ctx))
}

// StoresArgs matches the stores query arguments.
type StoresArgs struct {
	Query *string
}

func (r *RootResolver) Stores(ctx context.Context, args StoresArgs) (*gqlmodels.StoreSearch, error) {
	q := ""
	if args.Query != nil {
		q = *args.Query
	}
	return r.resolver(ctx).Stores(ctx, q)
}

// StoreArgs matches the store query arguments.
type StoreArgs struct {
	ID string
}

func (r *RootResolver) Store(ctx context.Context, args StoreArgs) (*gqlmodels.Store, error) {
	return r.resolver(ctx).Store(ctx, args.ID)
}

func (r *RootResolver) Brands(ctx context.Context) ([]*gqlmodels.Brand, error) {
	return r.resolver(ctx).Brands(ctx)
}

func (r *RootResolver) CurrentBrand(ctx context.Context) (*gqlmodels.Brand, error) {
	return r.resolver(ctx).CurrentBrand(ctx)
}

// ToggleFavoriteArgs matches the toggleFavorite mutation arguments.
type ToggleFavoriteArgs struct {
	ID  *string
	URL *string
}

func (r *RootResolver) ToggleFavorite(ctx context.Context, args ToggleFavoriteArgs) (*gqlmodels.ToggleResult, error) {
	return r.resolver(ctx).ToggleFavorite(ctx, args.ID, args.URL)
}

// SetCurrentBrandArgs matches the setCurrentBrand mutation arguments.
type SetCurrentBrandArgs struct {
	Key string
}

func (r *RootResolver) SetCurrentBrand(ctx context.Context, args SetCurrentBrandArgs) (*gqlmodels.Brand, error) {
	return r.resolver(ctx).SetCurrentBrand(ctx, args.Key)
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *RootResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}

// RegisterGraphQLRoutes mounts POST /graphql on the echo server. The brand
// override is read from the Brand header, the __brand query param, or the
// __brand request variable, in that order.
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB) {
	schema, err := NewSchema(db)
	if err != nil {
		log.Fatalf("graphql schema: %v", err)
	}
	h := Handler(schema)

	e.POST("/graphql", func(c echo.Context) error {
		req := c.Request()
		brand := graphql.GetBrand(req)

		// The relay handler reads the body itself, so restore it after peeking.
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		if brand == "" {
			if key, ok := graphql.ParseBrandFromVariables(body); ok {
				brand = key
			}
		}

		req = req.WithContext(graphql.WithBrand(req.Context(), brand))
		h.ServeHTTP(c.Response(), req)
		return nil
	})
}
