package api

import "context"

type MockGenerator struct {
	MockClient MockClient
}

func (m *MockGenerator) New(path string, args ...any) Client {
	return &m.MockClient
}

type MockClient struct {
	HeaderFunc func(name, value string) Client
	QueryFunc  func(query Parameter) Client
	BodyFunc   func(body Body) Client
	POSTFunc   func(ctx context.Context) (*Response, error)
	GETFunc    func(ctx context.Context) (*Response, error)
}

func (c *MockClient) Header(name, value string) Client {
	if c.HeaderFunc != nil {
		return c.HeaderFunc(name, value)
	}

	return c
}

func (c *MockClient) Query(query Parameter) Client {
	if c.QueryFunc != nil {
		return c.QueryFunc(query)
	}

	return c
}

func (c *MockClient) Body(body Body) Client {
	if c.BodyFunc != nil {
		return c.BodyFunc(body)
	}

	return c
}

func (c *MockClient) POST(ctx context.Context) (*Response, error) {
	if c.POSTFunc != nil {
		return c.POSTFunc(ctx)
	}

	panic("not implemented")
}

func (c *MockClient) GET(ctx context.Context) (*Response, error) {
	if c.GETFunc != nil {
		return c.GETFunc(ctx)
	}

	panic("not implemented")
}
