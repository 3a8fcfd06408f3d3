package opensearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opensearch/pkg/core"
	"opensearch/pkg/signer"
)

type fakeAPI struct {
	requests []*core.Request
	resp     core.Response
	err      error
}

func (f *fakeAPI) Do(_ context.Context, req *core.Request) (core.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeAPI) last(t *testing.T) *core.Request {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newFakeClient() (*Client, *fakeAPI) {
	api := &fakeAPI{resp: core.Response{"status": "OK"}}
	return NewWithAPI(api, "books"), api
}

func TestClient_Requests(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func(c *Client) (core.Response, error)
		method   string
		endpoint string
		params   core.Params
	}{
		{
			name: "search text",
			call: func(c *Client) (core.Response, error) {
				return c.Search(ctx, Text("query=default:'go'"))
			},
			method:   http.MethodGet,
			endpoint: "/search",
			params: core.Params{
				"query":        "query=default:'go'",
				"index_name":   "books",
				"fetch_fields": "",
				"format":       "json",
			},
		},
		{
			name: "search clauses with options",
			call: func(c *Client) (core.Response, error) {
				return c.Search(ctx,
					Clauses(Raw("query", "default:'go'"), Group("config", Pair("start", 0), Pair("hit", 5))),
					WithAppName("papers"), WithFetchFields("title", "gmt_modified"))
			},
			method:   http.MethodGet,
			endpoint: "/search",
			params: core.Params{
				"query":        "query=default:'go'&&config=start:0,hit:5",
				"index_name":   "papers",
				"fetch_fields": "title;gmt_modified",
				"format":       "json",
			},
		},
		{
			name: "suggest",
			call: func(c *Client) (core.Response, error) {
				return c.Suggest(ctx, "go", "title_suggest")
			},
			method:   http.MethodGet,
			endpoint: "/suggest",
			params: core.Params{
				"query":        "go",
				"index_name":   "books",
				"suggest_name": "title_suggest",
			},
		},
		{
			name: "suggest with hit",
			call: func(c *Client) (core.Response, error) {
				return c.Suggest(ctx, "go", "title_suggest", WithHit(3))
			},
			method:   http.MethodGet,
			endpoint: "/suggest",
			params: core.Params{
				"query":        "go",
				"index_name":   "books",
				"suggest_name": "title_suggest",
				"hit":          3,
			},
		},
		{
			name: "list apps defaults",
			call: func(c *Client) (core.Response, error) {
				return c.ListApps(ctx, 0, 0)
			},
			method:   http.MethodGet,
			endpoint: "/index",
			params:   core.Params{"page": 1, "page_size": 10},
		},
		{
			name: "list apps",
			call: func(c *Client) (core.Response, error) {
				return c.ListApps(ctx, 3, 50)
			},
			method:   http.MethodGet,
			endpoint: "/index",
			params:   core.Params{"page": 3, "page_size": 50},
		},
		{
			name: "get app",
			call: func(c *Client) (core.Response, error) {
				return c.GetApp(ctx)
			},
			method:   http.MethodGet,
			endpoint: "/index/books",
			params:   core.Params{"action": "status"},
		},
		{
			name: "create app",
			call: func(c *Client) (core.Response, error) {
				return c.CreateApp(ctx, "builtin_novel", WithAppName("novels"))
			},
			method:   http.MethodPost,
			endpoint: "/index/novels",
			params:   core.Params{"action": "create", "template": "builtin_novel"},
		},
		{
			name: "delete app",
			call: func(c *Client) (core.Response, error) {
				return c.DeleteApp(ctx)
			},
			method:   http.MethodPost,
			endpoint: "/index/books",
			params:   core.Params{"action": "delete"},
		},
		{
			name: "rebuild index",
			call: func(c *Client) (core.Response, error) {
				return c.RebuildIndex(ctx, nil)
			},
			method:   http.MethodGet,
			endpoint: "/index/books",
			params:   core.Params{"action": "createtask"},
		},
		{
			name: "rebuild index with import",
			call: func(c *Client) (core.Response, error) {
				return c.RebuildIndex(ctx, []string{"main", "extra"})
			},
			method:   http.MethodGet,
			endpoint: "/index/books",
			params: core.Params{
				"action":     "createtask",
				"operate":    "import",
				"table_name": "main;extra",
			},
		},
		{
			name: "error log defaults",
			call: func(c *Client) (core.Response, error) {
				return c.GetErrorLog(ctx, 0, 0, "")
			},
			method:   http.MethodGet,
			endpoint: "/index/error/books",
			params:   core.Params{"page": 1, "page_size": 20, "sort_mode": "DESC"},
		},
		{
			name: "error log",
			call: func(c *Client) (core.Response, error) {
				return c.GetErrorLog(ctx, 2, 5, SortAsc, WithAppName("papers"))
			},
			method:   http.MethodGet,
			endpoint: "/index/error/papers",
			params:   core.Params{"page": 2, "page_size": 5, "sort_mode": "ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, api := newFakeClient()

			resp, err := tt.call(client)

			require.NoError(t, err)
			assert.Equal(t, api.resp, resp)

			req := api.last(t)
			assert.Equal(t, tt.method, req.Method)
			assert.Equal(t, tt.endpoint, req.Endpoint)
			assert.Equal(t, tt.params, req.Params)
			assert.Empty(t, req.Body)
		})
	}
}

func TestClient_UploadData(t *testing.T) {
	client, api := newFakeClient()
	items := []Item{
		{Cmd: CmdAdd, Fields: map[string]any{"title": "hi", "id": 1}},
		{Cmd: CmdDelete, Timestamp: 1405301695127, Fields: map[string]any{"id": 2}},
	}

	_, err := client.UploadData(context.Background(), "main", items)
	require.NoError(t, err)

	req := api.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/index/doc/books", req.Endpoint)
	assert.Equal(t, core.Params{"action": "push", "table_name": "main"}, req.Params)

	const payload = `[{"cmd":"add","fields":{"id":1,"title":"hi"}},{"cmd":"delete","timestamp":1405301695127,"fields":{"id":2}}]`
	assert.Equal(t, "items="+signer.Quote(payload), req.Body)

	decoded, err := signer.Unquote(req.Body[len("items="):])
	require.NoError(t, err)
	assert.JSONEq(t, payload, decoded)
}

func TestClient_UploadData_InvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
	}{
		{"nil", nil},
		{"empty", []Item{}},
		{"missing cmd", []Item{{Fields: map[string]any{"id": 1}}}},
		{"unknown cmd", []Item{{Cmd: "upsert", Fields: map[string]any{"id": 1}}}},
		{"missing fields", []Item{{Cmd: CmdAdd}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, api := newFakeClient()

			resp, err := client.UploadData(context.Background(), "main", tt.items)

			require.Error(t, err)
			assert.Nil(t, resp)
			assert.True(t, core.IsAPIError(err))
			assert.True(t, core.IsInvalidInput(err))
			assert.Contains(t, err.Error(), "invalid items")
			assert.Empty(t, api.requests)
		})
	}
}

func TestClient_MissingAppName(t *testing.T) {
	api := &fakeAPI{}
	client := NewWithAPI(api, "")
	ctx := context.Background()

	calls := map[string]func() (core.Response, error){
		"search":    func() (core.Response, error) { return client.Search(ctx, Text("q")) },
		"suggest":   func() (core.Response, error) { return client.Suggest(ctx, "q", "s") },
		"upload":    func() (core.Response, error) { return client.UploadData(ctx, "main", []Item{{Cmd: CmdAdd, Fields: map[string]any{}}}) },
		"get app":   func() (core.Response, error) { return client.GetApp(ctx) },
		"create":    func() (core.Response, error) { return client.CreateApp(ctx, "t") },
		"delete":    func() (core.Response, error) { return client.DeleteApp(ctx) },
		"rebuild":   func() (core.Response, error) { return client.RebuildIndex(ctx, nil) },
		"error log": func() (core.Response, error) { return client.GetErrorLog(ctx, 1, 1, SortDesc) },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			_, err := call()

			require.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
			assert.Contains(t, err.Error(), "app name is required")
		})
	}
	assert.Empty(t, api.requests)

	_, err := client.ListApps(ctx, 1, 10)
	assert.NoError(t, err)
}

func TestClient_PropagatesErrors(t *testing.T) {
	cause := core.NewInvalidSignature("4003", "code:4003, message:sign error")
	client := NewWithAPI(&fakeAPI{err: cause}, "books")

	_, err := client.GetApp(context.Background())

	assert.True(t, errors.Is(err, core.ErrInvalidSignature))
}

func TestClient_Close(t *testing.T) {
	client, _ := newFakeClient()
	assert.NoError(t, client.Close())
	assert.Equal(t, "books", client.AppName())
}

func TestNew_InvalidConfig(t *testing.T) {
	client, err := New(core.DefaultConfig())

	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestClient_SearchEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "books", r.URL.Query().Get("index_name"))
		assert.Equal(t, "query=default:'go'", r.URL.Query().Get("query"))
		assert.NotEmpty(t, r.URL.Query().Get("Signature"))
		w.Write([]byte(`{"status":"OK","result":{"num":0,"items":[]}}`))
	}))
	defer server.Close()

	cfg := core.DefaultConfig().
		WithCredentials(server.URL, "testid", "testsecret").
		WithAppName("books").
		WithTimeout(5 * time.Second)
	client, err := New(cfg)
	require.NoError(t, err)
	defer client.Close()

	resp, err := client.Search(context.Background(), Clauses(Raw("query", "default:'go'")))

	require.NoError(t, err)
	assert.True(t, resp.OK())
}
