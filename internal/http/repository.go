package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
	"github.com/denisok6893-rgb/property-matchmaking/internal/storage"
)

// Repository is the record store behind the API. *storage.Store implements it.
type Repository interface {
	CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error)
	GetProperty(ctx context.Context, id string) (domain.Property, bool, error)
	DeleteProperty(ctx context.Context, id string) (bool, error)
	ListProperties(ctx context.Context, f storage.PropertyFilter) ([]domain.Property, int, error)
	AllProperties(ctx context.Context) ([]domain.Property, error)

	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	GetClient(ctx context.Context, id string) (domain.Client, bool, error)
	DeleteClient(ctx context.Context, id string) (bool, error)
	ListClients(ctx context.Context, limit, offset int) ([]domain.Client, int, error)
	AllClients(ctx context.Context) ([]domain.Client, error)
}

var _ Repository = (*storage.Store)(nil)

// ListParams are the raw /properties query filters.
type ListParams struct {
	Limit           int
	Offset          int
	City            string
	MinPrice        string
	MaxPrice        string
	MinBedrooms     string
	TransactionType string
	Sort            string
}

func listParamsFromRequest(r *http.Request, defLimit int) ListParams {
	q := r.URL.Query()
	limit, offset := parseLimitOffset(r, defLimit, 0)

	city := q.Get("city")
	if city == "" {
		city = q.Get("location")
	}
	return ListParams{
		Limit:           limit,
		Offset:          offset,
		City:            city,
		MinPrice:        q.Get("min_price"),
		MaxPrice:        q.Get("max_price"),
		MinBedrooms:     q.Get("min_bedrooms"),
		TransactionType: q.Get("transaction_type"),
		Sort:            q.Get("sort"),
	}
}

// Filter converts the params; unparsable numbers disable their condition.
func (p ListParams) Filter() storage.PropertyFilter {
	minPrice, _ := strconv.ParseFloat(p.MinPrice, 64)
	maxPrice, _ := strconv.ParseFloat(p.MaxPrice, 64)
	minBedrooms, _ := strconv.Atoi(p.MinBedrooms)

	return storage.PropertyFilter{
		Limit:           p.Limit,
		Offset:          p.Offset,
		City:            p.City,
		MinPrice:        minPrice,
		MaxPrice:        maxPrice,
		MinBedrooms:     minBedrooms,
		TransactionType: p.TransactionType,
		Sort:            p.Sort,
	}
}
