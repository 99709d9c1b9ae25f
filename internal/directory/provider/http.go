package provider

import (
	"net/http"

	"github.com/carefinder-au/carefinder/internal/directory/facet"
	requestutil "github.com/carefinder-au/carefinder/internal/platform/request"
	"github.com/carefinder-au/carefinder/internal/platform/respond"
	"github.com/carefinder-au/carefinder/pkg/convert"
	"github.com/carefinder-au/carefinder/pkg/pagination"
	"github.com/carefinder-au/carefinder/pkg/query"
)

// # Handler Implementation

// Handler implements the public directory HTTP surface.
//
// It is wired against the [Source] interface rather than the concrete
// [Service], so the fallback resolver slots in transparently.
type Handler struct {
	source Source
}

// NewHandler constructs a directory [Handler] over the given source.
//
// The public /providers subtree is composed in the server, because review
// submission endpoints from another domain nest under the same slug.
func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

// # Directory Endpoints

/*
GET /api/v1/providers.

Query parameters: query (free text), page, limit, and the repeatable facet
parameters state, category, funding (each also accepts comma-separated
values). Out-of-range paging values are clamped, never rejected.
*/
func (handler *Handler) SearchProviders(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	input := SearchInput{
		Query: values.Get("query"),
		Facets: facet.Filter{
			States:     multiParam(values["state"]),
			Categories: multiParam(values["category"]),
			Funding:    multiParam(values["funding"]),
		},
		Page:  convert.ToIntD(values.Get("page"), 1),
		Limit: convert.ToIntD(values.Get("limit"), DefaultPageSize),
	}

	result, err := handler.source.Search(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result.Providers, pagination.NewMeta(result.Page, result.Limit, result.Total))
}

/*
GET /api/v1/providers/{slug}.

Responds 404 only when every directory tier misses.
*/
func (handler *Handler) GetProvider(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	detail, err := handler.source.Detail(request.Context(), slug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/filters.
*/
func (handler *Handler) GetFilters(writer http.ResponseWriter, request *http.Request) {
	filters, err := handler.source.Filters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, filters)
}

// multiParam flattens repeatable query parameters, splitting any
// comma-separated values.
func multiParam(raw []string) []string {
	var values []string
	for _, value := range raw {
		values = append(values, query.StringSlice(value)...)
	}
	return values
}
