package domain

import (
	"context"
	"errors"

	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

// verifyCapability maps verifier outcomes onto api errors: a soft denial
// is a 403, while a backing store failure surfaces as Unknown so the
// caller does not mistake an outage for missing permission.
func verifyCapability(ctx context.Context, verifier *common.AdminVerifier, capabilities ...string) error {
	err := verifier.Verify(ctx, capabilities...)
	if err == nil {
		return nil
	}

	if errors.Is(err, common.ErrNotAnAdmin) || errors.Is(err, common.ErrNoPermission) {
		xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	xcontext.Logger(ctx).Errorf("Cannot resolve admin access: %v", err)
	return errorx.Unknown
}

// pagination validates list parameters against the configured limits and
// substitutes the default page size for a zero limit.
func pagination(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 || offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit and offset must be non-negative")
	}

	if limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.MaxLimit)
	}

	return offset, limit, nil
}
