package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/organics-storefront/api/responses"
	"github.com/angelmondragon/organics-storefront/api/validators"
	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/storefrontapi"
)

const maxQueryLen = 100

// Catalog is the remote product catalog.
type Catalog interface {
	ListByCategory(ctx context.Context, category string) ([]storefrontapi.Product, error)
	Search(ctx context.Context, query string) ([]storefrontapi.Product, error)
	FindProduct(ctx context.Context, productID string) (*storefrontapi.Product, error)
}

// CatalogProducts lists products, optionally filtered by ?category=.
func CatalogProducts(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		category := validators.SanitizeQuery(r.URL.Query().Get("category"), maxQueryLen)
		products, err := catalog.ListByCategory(r.Context(), category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nonNil(products))
	}
}

// CatalogSearch forwards ?query= to the remote search endpoint.
func CatalogSearch(catalog Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		query := validators.SanitizeQuery(r.URL.Query().Get("query"), maxQueryLen)
		products, err := catalog.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, nonNil(products))
	}
}

func nonNil(products []storefrontapi.Product) []storefrontapi.Product {
	if products == nil {
		return []storefrontapi.Product{}
	}
	return products
}
