package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/mangrove-guardian/backend/config"
	"github.com/mangrove-guardian/backend/pkg/api"
)

const validateResource = "/validate"

type Endpoint struct {
	cfg          config.ValidatorConfigs
	apiGenerator api.Generator
}

func New(cfg config.ValidatorConfigs) *Endpoint {
	return &Endpoint{
		cfg:          cfg,
		apiGenerator: api.NewGenerator(cfg.Endpoints...),
	}
}

// Validate asks the validation service for a verdict on the report fields.
// The call is bounded by the configured timeout so a slow service never
// stalls report submission.
func (e *Endpoint) Validate(ctx context.Context, fields IncidentFields) (Verdict, error) {
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	resp, err := e.apiGenerator.New(validateResource).
		Body(api.JSON{
			"title":         fields.Title,
			"description":   fields.Description,
			"incident_type": fields.IncidentType,
			"severity":      fields.Severity,
			"location":      fields.Location,
		}).
		POST(ctx)
	if err != nil {
		return Verdict{}, err
	}

	if resp.Code != 200 {
		return Verdict{}, fmt.Errorf("validation service returned status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Verdict{}, errors.New("invalid response")
	}

	valid, err := body.GetBool("valid")
	if err != nil {
		return Verdict{}, err
	}

	reason, err := body.GetString("reason")
	if err != nil {
		return Verdict{}, err
	}

	return Verdict{Valid: valid, Reason: reason}, nil
}
