package validator

import "context"

type MockEndpoint struct {
	ValidateFunc func(ctx context.Context, fields IncidentFields) (Verdict, error)
}

func (m *MockEndpoint) Validate(ctx context.Context, fields IncidentFields) (Verdict, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, fields)
	}

	return Verdict{Valid: true}, nil
}
