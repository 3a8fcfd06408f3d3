// Package cli implements the opensearch command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"opensearch/pkg/core"
	"opensearch/pkg/opensearch"
	"opensearch/pkg/requestor"
)

const (
	envPrefix  = "OPENSEARCH_"
	envFileVar = envPrefix + "ENV_FILE"
	userAgent  = "opensearch-cli"
)

// rootFlags holds the global flags of one command tree.
type rootFlags struct {
	BaseURL         string
	AccessKeyID     string
	AccessKeySecret string
	APIVersion      string
	App             string
	Timeout         time.Duration
	LogLevel        string
	Debug           bool
	JQ              string
	Compact         bool
}

type rootCmd struct {
	flags rootFlags
}

// Execute loads the environment file, builds the command tree and runs it.
func Execute(ctx context.Context, args []string) error {
	loadEnvFile()

	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadEnvFile loads OPENSEARCH_* variables from $OPENSEARCH_ENV_FILE, or from
// opensearch/.env under the user config directory when it exists. Variables
// already set in the environment are kept.
func loadEnvFile() {
	path := os.Getenv(envFileVar)
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return
		}
		path = filepath.Join(dir, "opensearch", ".env")
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// NewRootCommand returns the root command. Flag defaults are read from the
// OPENSEARCH_* environment variables at construction.
func NewRootCommand() *cobra.Command {
	r := &rootCmd{}

	cmd := &cobra.Command{
		Use:           "opensearch",
		Short:         "Command line client for the OpenSearch v2 API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&r.flags.BaseURL, "base-url", envString("BASE_URL", ""), "service base URL [$OPENSEARCH_BASE_URL]")
	pf.StringVar(&r.flags.AccessKeyID, "access-key-id", envString("ACCESS_KEY_ID", ""), "access key id [$OPENSEARCH_ACCESS_KEY_ID]")
	pf.StringVar(&r.flags.AccessKeySecret, "access-key-secret", envString("ACCESS_KEY_SECRET", ""), "access key secret [$OPENSEARCH_ACCESS_KEY_SECRET]")
	pf.StringVar(&r.flags.APIVersion, "api-version", envString("API_VERSION", core.DefaultAPIVersion), "API version [$OPENSEARCH_API_VERSION]")
	pf.StringVar(&r.flags.App, "app", envString("APP", ""), "application (index) name [$OPENSEARCH_APP]")
	pf.DurationVar(&r.flags.Timeout, "timeout", envDuration("TIMEOUT", core.DefaultConfig().Timeout), "request timeout [$OPENSEARCH_TIMEOUT]")
	pf.StringVar(&r.flags.LogLevel, "log-level", envString("LOG_LEVEL", "warn"), "log level: trace, debug, info, warn, error, disabled [$OPENSEARCH_LOG_LEVEL]")
	pf.BoolVar(&r.flags.Debug, "debug", envBool("DEBUG"), "log request bodies; raises --log-level to debug [$OPENSEARCH_DEBUG]")
	pf.StringVar(&r.flags.JQ, "jq", "", "filter output through a jq expression")
	pf.BoolVar(&r.flags.Compact, "compact", false, "print single-line JSON")

	cmd.AddCommand(
		newSearchCommand(r),
		newSuggestCommand(r),
		newUploadCommand(r),
		newAppsCommand(r),
		newRebuildCommand(r),
		newErrorLogCommand(r),
	)

	return cmd
}

func (r *rootCmd) config() *core.Config {
	cfg := core.DefaultConfig().
		WithCredentials(r.flags.BaseURL, r.flags.AccessKeyID, r.flags.AccessKeySecret).
		WithAPIVersion(r.flags.APIVersion).
		WithAppName(r.flags.App).
		WithTimeout(r.flags.Timeout).
		WithDebug(r.flags.Debug)
	cfg.LogLevel = r.flags.LogLevel
	if r.flags.Debug {
		cfg.LogLevel = "debug"
	}
	cfg.UserAgent = userAgent
	return cfg
}

func (r *rootCmd) client(cmd *cobra.Command) (*opensearch.Client, error) {
	cfg := r.config()
	if err := cfg.Validate(); err != nil {
		return nil, usageError{fmt.Errorf("invalid configuration: %w", err)}
	}

	logger := newLogger(cmd.ErrOrStderr())
	return opensearch.New(cfg, requestor.WithLogger(logger))
}

// call runs fn with a fresh client and prints its response.
func (r *rootCmd) call(cmd *cobra.Command, fn func(context.Context, *opensearch.Client) (core.Response, error)) error {
	client, err := r.client(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := fn(cmd.Context(), client)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), map[string]any(resp), r.flags.JQ, r.flags.Compact)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	v := envString(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(envString(key, ""))
	return err == nil && b
}
