// Package client is a Go client of the mint HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/wavesplatform/gomint/pkg/proto"
)

const (
	// ApiKeyHeader is an HTTP header name for API Key
	ApiKeyHeader = "X-API-Key" // #nosec: it's a header name
	// CallerHeader is an HTTP header name for the caller address
	CallerHeader = "X-Caller-Address"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	BaseUrl string
	Client  Doer
	ApiKey  string
	// Caller is sent with every request that changes the ledger.
	Caller proto.Address
}

var defaultOptions = Options{
	BaseUrl: "http://127.0.0.1:6870",
	Client:  &http.Client{Timeout: 10 * time.Second},
}

type Client struct {
	options    Options
	Collection *Collection
	Assets     *Assets
	Operator   *Operator
}

type Response struct {
	*http.Response
}

// NewClient creates new client instance.
// If no options provided will use default.
func NewClient(options ...Options) (*Client, error) {
	if len(options) > 1 {
		return nil, errors.New("too many options provided. Expects no or just one item")
	}

	opts := defaultOptions

	if len(options) == 1 {
		option := options[0]
		if option.BaseUrl != "" {
			opts.BaseUrl = option.BaseUrl
		}
		if option.Client != nil {
			opts.Client = option.Client
		}
		if option.ApiKey != "" {
			opts.ApiKey = option.ApiKey
		}
		if !option.Caller.IsZero() {
			opts.Caller = option.Caller
		}
	}

	c := &Client{
		options:    opts,
		Collection: NewCollection(opts),
		Assets:     NewAssets(opts),
		Operator:   NewOperator(opts),
	}

	return c, nil
}

func (a *Client) GetOptions() Options {
	return a.options
}

func newResponse(response *http.Response) *Response {
	return &Response{
		Response: response,
	}
}

func (a *Client) Do(ctx context.Context, req *http.Request, v any) (*Response, error) {
	return doHTTP(ctx, a.options, req, v)
}

// newRequest builds a request to the path with an optional JSON body.
func newRequest(options Options, method, path string, body any) (*http.Request, error) {
	u, err := joinUrl(options.BaseUrl, path)
	if err != nil {
		return nil, err
	}
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}
	return http.NewRequest(method, u.String(), r)
}

func newCallerRequest(options Options, method, path string, body any) (*http.Request, error) {
	if options.Caller.IsZero() {
		return nil, NoCallerError
	}
	req, err := newRequest(options, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(CallerHeader, options.Caller.String())
	return req, nil
}

func newOperatorRequest(options Options, method, path string, body any) (*http.Request, error) {
	if options.ApiKey == "" {
		return nil, NoApiKeyError
	}
	req, err := newCallerRequest(options, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(ApiKeyHeader, options.ApiKey)
	return req, nil
}

func doHTTP(ctx context.Context, options Options, req *http.Request, v any) (*Response, error) {
	req = req.WithContext(ctx)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := options.Client.Do(req)
	if err != nil {
		return nil, newRequestError(err, "")
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close() // No error handling intentionally
	}(resp.Body)

	response := newResponse(resp)

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(response.Body)
		return response, newRequestError(
			errors.Errorf("Invalid status code: expect 200 or 201 got %d", response.StatusCode),
			string(body),
		)
	}

	select {
	case <-ctx.Done():
		return response, ctx.Err()
	default:
	}

	if v != nil {
		if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
			return response, newParseError(err)
		}
	}

	return response, nil
}

func joinUrl(baseRaw string, pathRaw string) (*url.URL, error) {
	base, err := url.Parse(baseRaw)
	if err != nil {
		return nil, err
	}

	rel, err := url.Parse(pathRaw)
	if err != nil {
		return nil, err
	}
	if rel.IsAbs() {
		return nil, errors.New("path must be relative URL")
	}
	res := base.JoinPath(rel.EscapedPath())

	q := res.Query()
	for k, vals := range rel.Query() {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	res.RawQuery = q.Encode()

	return res, nil
}
