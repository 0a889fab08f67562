package services

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeAPI answers by "METHOD path" with canned JSON or an error and records
// every call.
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string
	errs      map[string]error
	calls     []call
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeAPI) respond(method, path, body string) *fakeAPI {
	f.responses[method+" "+path] = body
	return f
}

func (f *fakeAPI) fail(method, path string, err error) *fakeAPI {
	f.errs[method+" "+path] = err
	return f
}

func (f *fakeAPI) do(method, path string, query url.Values, body, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Query: query, Body: body})
	resp, hasResp := f.responses[method+" "+path]
	err := f.errs[method+" "+path]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if out != nil && hasResp {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeAPI) Get(_ context.Context, path string, query url.Values, out any) error {
	return f.do("GET", path, query, nil, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out any) error {
	return f.do("POST", path, nil, body, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, body, out any) error {
	return f.do("PUT", path, nil, body, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string, out any) error {
	return f.do("DELETE", path, nil, nil, out)
}

func (f *fakeAPI) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}
