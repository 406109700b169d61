package domain

import (
	"context"

	"github.com/mangrove-guardian/backend/internal/common"
	"github.com/mangrove-guardian/backend/internal/model"
	"github.com/mangrove-guardian/backend/internal/repository"
	"github.com/mangrove-guardian/backend/pkg/errorx"
	"github.com/mangrove-guardian/backend/pkg/storage"
	"github.com/mangrove-guardian/backend/pkg/xcontext"
)

type FileDomain interface {
	UploadEvidence(context.Context, *model.UploadEvidenceRequest) (*model.UploadEvidenceResponse, error)
	UploadAvatar(context.Context, *model.UploadAvatarRequest) (*model.UploadAvatarResponse, error)
}

type fileDomain struct {
	fileStorage storage.Storage
	profileRepo repository.ProfileRepository
}

func NewFileDomain(fileStorage storage.Storage, profileRepo repository.ProfileRepository) *fileDomain {
	return &fileDomain{
		fileStorage: fileStorage,
		profileRepo: profileRepo,
	}
}

func (d *fileDomain) UploadEvidence(
	ctx context.Context, req *model.UploadEvidenceRequest,
) (*model.UploadEvidenceResponse, error) {
	resp, err := common.ProcessEvidence(ctx, d.fileStorage, "evidence")
	if err != nil {
		return nil, err
	}

	return &model.UploadEvidenceResponse{URL: resp.Url}, nil
}

// UploadAvatar stores the resized avatar set and records the largest
// rendition on the profile.
func (d *fileDomain) UploadAvatar(
	ctx context.Context, req *model.UploadAvatarRequest,
) (*model.UploadAvatarResponse, error) {
	resps, err := common.ProcessAvatar(ctx, d.fileStorage, "avatar")
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(resps))
	for _, r := range resps {
		urls = append(urls, r.Url)
	}

	if len(urls) > 0 {
		userID := xcontext.RequestUserID(ctx)
		err := d.profileRepo.SetAvatarURL(ctx, userID, urls[0])
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save avatar url: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.UploadAvatarResponse{URLs: urls}, nil
}
