package chi

import (
	"context"

	"github.com/kailas-cloud/facetsearch/internal/domain/search/param"
	"github.com/kailas-cloud/facetsearch/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/facetsearch/internal/usecase/search"
)

// Domain is one search domain as served over HTTP. Results are returned
// ready for JSON encoding.
type Domain interface {
	Name() string
	Parameters() *param.Registry
	// SuggestParameter is the completion parameter of GET /v1/{domain}/suggest.
	SuggestParameter() (param.Parameter, bool)
	Search(ctx context.Context, req *request.Faceted, semantic bool) (any, error)
	Autocomplete(ctx context.Context, req *request.Request, p param.Parameter) (any, error)
	Suggest(ctx context.Context, prefix string, p param.Parameter, limit int) (any, error)
}

type boundDomain[T, S any] struct {
	svc     *searchuc.Service[T, S]
	suggest param.Parameter
}

// Bind exposes a typed search service as a Domain. A zero suggest parameter
// disables the suggest route.
func Bind[T, S any](svc *searchuc.Service[T, S], suggest param.Parameter) Domain {
	return &boundDomain[T, S]{svc: svc, suggest: suggest}
}

func (d *boundDomain[T, S]) Name() string { return d.svc.Name() }

func (d *boundDomain[T, S]) Parameters() *param.Registry { return d.svc.Parameters() }

func (d *boundDomain[T, S]) SuggestParameter() (param.Parameter, bool) {
	return d.suggest, !d.suggest.IsZero()
}

func (d *boundDomain[T, S]) Search(ctx context.Context, req *request.Faceted, semantic bool) (any, error) {
	page, err := d.svc.Search(ctx, req, semantic)
	if err != nil {
		return nil, err
	}
	return page, nil
}

func (d *boundDomain[T, S]) Autocomplete(ctx context.Context, req *request.Request, p param.Parameter) (any, error) {
	out, err := d.svc.Autocomplete(ctx, req, p)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []S{}
	}
	return out, nil
}

func (d *boundDomain[T, S]) Suggest(ctx context.Context, prefix string, p param.Parameter, limit int) (any, error) {
	out, err := d.svc.Suggest(ctx, prefix, p, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []S{}
	}
	return out, nil
}
