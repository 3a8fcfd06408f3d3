package opensearch

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"

	"opensearch/pkg/core"
	"opensearch/pkg/signer"
)

// SortMode orders error log entries.
type SortMode string

// Sort modes accepted by the error log endpoint.
const (
	SortDesc SortMode = "DESC"
	SortAsc  SortMode = "ASC"
)

const (
	defaultPage         = 1
	defaultAppsPageSize = 10
	defaultLogPageSize  = 20
)

// Search runs query against the application.
func (c *Client) Search(ctx context.Context, query Query, opts ...Option) (core.Response, error) {
	o := ApplyOptions(opts...)
	app, err := c.resolveApp(o)
	if err != nil {
		return nil, err
	}

	params := core.Params{
		"query":        query.String(),
		"index_name":   app,
		"fetch_fields": o.fetchFields(),
		"format":       signer.DefaultFormat,
	}
	return c.do(ctx, core.OpSearch, "/search", params, "")
}

// Suggest returns drop-down suggestions for query from the named suggester.
func (c *Client) Suggest(ctx context.Context, query, suggestName string, opts ...Option) (core.Response, error) {
	o := ApplyOptions(opts...)
	app, err := c.resolveApp(o)
	if err != nil {
		return nil, err
	}

	params := core.Params{
		"query":        query,
		"index_name":   app,
		"suggest_name": suggestName,
	}
	if o.Hit != nil {
		params["hit"] = *o.Hit
	}
	return c.do(ctx, core.OpSuggest, "/suggest", params, "")
}

// UploadData pushes items into a table of the application. The items travel
// in the form body, outside the signed query.
func (c *Client) UploadData(ctx context.Context, tableName string, items []Item, opts ...Option) (core.Response, error) {
	o := ApplyOptions(opts...)
	app, err := c.resolveApp(o)
	if err != nil {
		return nil, err
	}
	if err := validateItems(items); err != nil {
		return nil, core.NewInvalidInput("invalid items", err)
	}

	data, err := sonic.ConfigStd.Marshal(items)
	if err != nil {
		return nil, core.WrapAPIError("encode items", err)
	}

	params := core.Params{
		"action":     "push",
		"table_name": tableName,
	}
	return c.do(ctx, core.OpUploadData, "/index/doc/"+app, params, "items="+signer.Quote(data))
}

// ListApps lists the applications of the account. Non-positive page and
// pageSize fall back to 1 and 10.
func (c *Client) ListApps(ctx context.Context, page, pageSize int) (core.Response, error) {
	params := core.Params{
		"page":      orDefault(page, defaultPage),
		"page_size": orDefault(pageSize, defaultAppsPageSize),
	}
	return c.do(ctx, core.OpListApps, "/index", params, "")
}

// GetApp returns the status of the application.
func (c *Client) GetApp(ctx context.Context, opts ...Option) (core.Response, error) {
	return c.appAction(ctx, core.OpGetApp, core.Params{"action": "status"}, opts)
}

// CreateApp creates the application from a template.
func (c *Client) CreateApp(ctx context.Context, template string, opts ...Option) (core.Response, error) {
	return c.appAction(ctx, core.OpCreateApp, core.Params{"action": "create", "template": template}, opts)
}

// DeleteApp deletes the application.
func (c *Client) DeleteApp(ctx context.Context, opts ...Option) (core.Response, error) {
	return c.appAction(ctx, core.OpDeleteApp, core.Params{"action": "delete"}, opts)
}

// RebuildIndex starts an index rebuild. With table names the task also
// imports data from those tables.
func (c *Client) RebuildIndex(ctx context.Context, tableNames []string, opts ...Option) (core.Response, error) {
	params := core.Params{"action": "createtask"}
	if len(tableNames) > 0 {
		params["operate"] = "import"
		params["table_name"] = strings.Join(tableNames, ";")
	}
	return c.appAction(ctx, core.OpRebuildIndex, params, opts)
}

// GetErrorLog returns a page of the application's error log. Non-positive
// page and pageSize fall back to 1 and 20, an empty sort mode to DESC.
func (c *Client) GetErrorLog(ctx context.Context, page, pageSize int, sortMode SortMode, opts ...Option) (core.Response, error) {
	o := ApplyOptions(opts...)
	app, err := c.resolveApp(o)
	if err != nil {
		return nil, err
	}
	if sortMode == "" {
		sortMode = SortDesc
	}

	params := core.Params{
		"page":      orDefault(page, defaultPage),
		"page_size": orDefault(pageSize, defaultLogPageSize),
		"sort_mode": string(sortMode),
	}
	return c.do(ctx, core.OpGetErrorLog, "/index/error/"+app, params, "")
}

func (c *Client) appAction(ctx context.Context, op core.Operation, params core.Params, opts []Option) (core.Response, error) {
	app, err := c.resolveApp(ApplyOptions(opts...))
	if err != nil {
		return nil, err
	}
	return c.do(ctx, op, "/index/"+app, params, "")
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
