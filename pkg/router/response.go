package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

// handleResponse writes the envelope: either the handler's response or the
// first error recorded on the request state.
func handleResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)

	if err := xcontext.Error(ctx); err != nil {
		if werr := WriteJson(w, newErrorResponse(err)); werr != nil {
			xcontext.Logger(ctx).Errorf("cannot write the error response: %v", werr)
		}
		return
	}

	if resp := xcontext.Response(ctx); resp != nil {
		if err := WriteJson(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
			if werr := WriteJson(w, newErrorResponse(errorx.New(errorx.BadResponse, "Cannot write the response"))); werr != nil {
				xcontext.Logger(ctx).Errorf("cannot write the fallback response: %v", werr)
			}
		}
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
