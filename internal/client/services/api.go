package services

import (
	"context"
	"net/url"
)

// API is the transport the facades are built on. *apiclient.Client
// satisfies it.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}
