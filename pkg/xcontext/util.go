package xcontext

import "context"

type errorHolder struct{ err error }

type responseHolder struct{ resp any }

// WithRequestState installs mutable holders for the handler error and
// response, so closers running after the handler can observe them. The
// router calls this once per request.
func WithRequestState(ctx context.Context) context.Context {
	ctx = context.WithValue(ctx, errorKey{}, &errorHolder{})
	return context.WithValue(ctx, responseKey{}, &responseHolder{})
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		holder.err = err
	}
}

func Error(ctx context.Context) error {
	if holder, ok := ctx.Value(errorKey{}).(*errorHolder); ok {
		return holder.err
	}

	return nil
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		holder.resp = resp
	}
}

func Response(ctx context.Context) any {
	if holder, ok := ctx.Value(responseKey{}).(*responseHolder); ok {
		return holder.resp
	}

	return nil
}
