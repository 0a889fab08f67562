// Package apiclient is the single point of egress to the journaling backend.
//
// # Overview
//
// Client wraps an *http.Client bound to a fixed base URL and JSON content
// negotiation. Every call passes through two interception steps:
//
//  1. authorize attaches "Authorization: Bearer <token>" when the TokenStore
//     holds a token, plus an X-Request-ID used in logs.
//  2. inspect classifies the response. A 401 from any endpoint clears the
//     TokenStore and notifies the registered UnauthorizedHandler before the
//     call returns, so the caller and the session layer both see the failure.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError (use errors.As). A 401 also
// matches ErrUnauthorized. Transport failures, including the client timeout,
// match ErrUnavailable. Nothing is retried.
//
// Client is safe for concurrent use.
package apiclient
