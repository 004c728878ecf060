// Package services maps typed parameters onto backend endpoints. Functions carry
// no business logic; errors from the transport are returned unchanged.
package services

import (
	"context"

	"github.com/ytinsight/insight-client/internal/apiclient"
)

// Requester is the transport every service calls through
type Requester interface {
	Do(ctx context.Context, req apiclient.Request, out interface{}) error
}

// Ensure the HTTP client satisfies Requester
var _ Requester = (*apiclient.Client)(nil)

// PageRequest addresses a zero-based page of a list endpoint
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) params() []apiclient.Param {
	return []apiclient.Param{apiclient.P("page", p.Page), apiclient.P("size", p.Size)}
}

func get(ctx context.Context, api Requester, endpoint string, out interface{}) error {
	return api.Do(ctx, apiclient.Request{Method: "GET", Endpoint: endpoint}, out)
}

func send(ctx context.Context, api Requester, method, endpoint string, body, out interface{}) error {
	return api.Do(ctx, apiclient.Request{Method: method, Endpoint: endpoint, Body: body}, out)
}
