package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"opensearch/pkg/core"
	"opensearch/pkg/opensearch"
)

func newSearchCommand(r *rootCmd) *cobra.Command {
	var (
		raw         bool
		start, hit  int
		filter      string
		sort        string
		fetchFields []string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the application",
		Long: `Search the application.

QUERY is the value of the query clause, e.g. "default:'go'". With --raw it is
sent as the complete query string instead.`,
		Example: `  opensearch search "default:'go'" --hit 5 --fetch-fields title,body
  opensearch search --raw "config=start:0,hit:20&&query=default:'go'"`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query opensearch.Query
			if raw {
				query = opensearch.Text(args[0])
			} else {
				var config []opensearch.KV
				if cmd.Flags().Changed("start") {
					config = append(config, opensearch.Pair("start", start))
				}
				if cmd.Flags().Changed("hit") {
					config = append(config, opensearch.Pair("hit", hit))
				}
				query = opensearch.Clauses(
					opensearch.Raw("query", args[0]),
					opensearch.Group("config", config...),
					opensearch.Raw("filter", filter),
					opensearch.Raw("sort", sort),
				)
			}

			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.Search(ctx, query, opensearch.WithFetchFields(fetchFields...))
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "send QUERY as the complete query string")
	cmd.Flags().IntVar(&start, "start", 0, "offset of the first hit")
	cmd.Flags().IntVar(&hit, "hit", 0, "number of hits to return")
	cmd.Flags().StringVar(&filter, "filter", "", "filter clause")
	cmd.Flags().StringVar(&sort, "sort", "", "sort clause, e.g. -RANK")
	cmd.Flags().StringSliceVar(&fetchFields, "fetch-fields", nil, "fields to return")
	cmd.MarkFlagsMutuallyExclusive("raw", "start")
	cmd.MarkFlagsMutuallyExclusive("raw", "hit")

	return cmd
}

func newSuggestCommand(r *rootCmd) *cobra.Command {
	var (
		name string
		hit  int
	)

	cmd := &cobra.Command{
		Use:     "suggest QUERY",
		Short:   "Fetch drop-down suggestions",
		Example: `  opensearch suggest "go" --name title_suggest --hit 5`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []opensearch.Option
			if cmd.Flags().Changed("hit") {
				opts = append(opts, opensearch.WithHit(hit))
			}
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.Suggest(ctx, args[0], name, opts...)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "suggestion rule name")
	cmd.Flags().IntVar(&hit, "hit", 0, "number of suggestions")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newUploadCommand(r *rootCmd) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "upload TABLE",
		Short: "Push documents into a table",
		Long: `Push documents into a table of the application.

The items are read as a JSON array from --file, or from stdin when the file is
"-": [{"cmd":"add","fields":{"id":"1","title":"hello"}}]`,
		Example: `  opensearch upload main --file items.json
  cat items.json | opensearch upload main`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.UploadData(ctx, args[0], items)
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON items file, - for stdin")

	return cmd
}

func readItems(stdin io.Reader, path string) ([]opensearch.Item, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	var items []opensearch.Item
	if err := sonic.Unmarshal(data, &items); err != nil {
		return nil, usageError{fmt.Errorf("parse items: %w", err)}
	}
	return items, nil
}

func newAppsCommand(r *rootCmd) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage applications",
	}

	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.ListApps(ctx, page, pageSize)
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", 10, "applications per page")

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the status of the application",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.GetApp(ctx)
			})
		},
	}

	var template string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the application from a template",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.CreateApp(ctx, template)
			})
		},
	}
	create.Flags().StringVar(&template, "template", "", "template name")
	_ = create.MarkFlagRequired("template")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the application",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.DeleteApp(ctx)
			})
		},
	}

	cmd.AddCommand(list, get, create, del)
	return cmd
}

func newRebuildCommand(r *rootCmd) *cobra.Command {
	var tables []string

	cmd := &cobra.Command{
		Use:     "rebuild",
		Short:   "Rebuild the application index",
		Example: `  opensearch rebuild --table main --table extra`,
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.RebuildIndex(ctx, tables)
			})
		},
	}

	cmd.Flags().StringSliceVar(&tables, "table", nil, "tables to import after the rebuild")

	return cmd
}

func newErrorLogCommand(r *rootCmd) *cobra.Command {
	var (
		page, pageSize int
		sortMode       string
	)

	cmd := &cobra.Command{
		Use:   "error-log",
		Short: "Show the application error log",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode := opensearch.SortMode(strings.ToUpper(sortMode))
			if mode != opensearch.SortAsc && mode != opensearch.SortDesc {
				return usageError{fmt.Errorf("invalid --sort %q: must be ASC or DESC", sortMode)}
			}
			return r.call(cmd, func(ctx context.Context, c *opensearch.Client) (core.Response, error) {
				return c.GetErrorLog(ctx, page, pageSize, mode)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "entries per page")
	cmd.Flags().StringVar(&sortMode, "sort", string(opensearch.SortDesc), "sort mode: ASC or DESC")

	return cmd
}
