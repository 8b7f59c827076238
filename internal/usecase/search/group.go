package search

import (
	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
)

// grouped splits request parameters between the main query and the post-filter.
// The two maps are disjoint and together hold every request parameter.
type grouped struct {
	query      map[param.Parameter][]string
	postFilter map[param.Parameter][]string
}

// groupParameters moves parameters that are also facets to the post-filter
// when multi-select faceting is on, so facet counts can ignore their own selection.
// Geometry always stays in the query: the post-filter cannot express shapes.
func groupParameters(req *request.Faceted) grouped {
	g := grouped{
		query:      make(map[param.Parameter][]string),
		postFilter: make(map[param.Parameter][]string),
	}
	multi := req.MultiSelect() && req.HasFacets()
	for _, p := range req.Parameters() {
		if multi && req.IsFacet(p) && p.Kind() != param.Geometry {
			g.postFilter[p] = req.Values(p)
			continue
		}
		g.query[p] = req.Values(p)
	}
	return g
}
