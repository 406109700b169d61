package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context; a
// returned error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response envelope has been written.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx     context.Context
	mux     *http.ServeMux
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context carries the configs,
// database, logger, and token engine every request starts from.
func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

// Branch derives a router sharing the same mux but with its own middleware
// chain.
func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrap(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrap(r, http.MethodPost, handler))
}

func wrap[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	befores := router.befores
	afters := router.afters
	closers := router.closers

	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithHTTPRequest(router.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithRequestState(ctx)

		func() {
			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			var request Request
			if err := bind(ctx, method, req, &request); err != nil {
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, &request)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)

			for _, m := range afters {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}
		}()

		handleResponse(ctx)
		for _, c := range closers {
			c(ctx)
		}
	}
}

func bind(ctx context.Context, method string, req *http.Request, target any) error {
	switch method {
	case http.MethodGet:
		values := map[string]any{}
		for key, value := range req.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName:          "json",
			WeaklyTypedInput: true,
			Result:           target,
		})
		if err != nil {
			return err
		}

		return decoder.Decode(values)

	case http.MethodPost:
		// Multipart bodies are consumed by the handler itself.
		contentType := req.Header.Get("Content-Type")
		if strings.HasPrefix(contentType, "multipart/form-data") {
			return nil
		}

		if req.Body == nil || req.ContentLength == 0 {
			return nil
		}

		return json.NewDecoder(req.Body).Decode(target)
	}

	return nil
}
