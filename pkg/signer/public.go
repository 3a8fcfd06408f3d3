package signer

import (
	"math/rand/v2"
	"strconv"
	"time"

	"opensearch/pkg/core"
)

// Fixed public parameter values.
const (
	SignatureMethod  = "HMAC-SHA1"
	SignatureVersion = "1.0"
	// TimestampFormat is UTC with second precision, e.g. 2014-07-14T01:34:55Z.
	TimestampFormat = "2006-01-02T15:04:05Z"
)

// PublicParams holds the protocol parameters sent with every request.
type PublicParams struct {
	Version          string
	AccessKeyID      string
	SignatureMethod  string
	SignatureVersion string
	SignatureNonce   string
	Timestamp        string
	// SignMode is sent as sign_mode when set. POST requests need it even though
	// the service documentation does not list it.
	SignMode *int
}

// Params returns the public parameters keyed by their wire names.
func (p PublicParams) Params() core.Params {
	params := core.Params{
		"Version":          p.Version,
		"AccessKeyId":      p.AccessKeyID,
		"SignatureMethod":  p.SignatureMethod,
		"SignatureVersion": p.SignatureVersion,
		"SignatureNonce":   p.SignatureNonce,
		"Timestamp":        p.Timestamp,
	}
	if p.SignMode != nil {
		params["sign_mode"] = *p.SignMode
	}
	return params
}

type publicOptions struct {
	nonce     string
	timestamp string
	signMode  *int
	now       func() time.Time
}

// PublicOption customizes BuildPublicParams.
type PublicOption func(*publicOptions)

// WithNonce uses nonce instead of a generated one.
func WithNonce(nonce string) PublicOption {
	return func(o *publicOptions) {
		o.nonce = nonce
	}
}

// WithTimestamp uses timestamp instead of the current time.
func WithTimestamp(timestamp string) PublicOption {
	return func(o *publicOptions) {
		o.timestamp = timestamp
	}
}

// WithSignMode includes sign_mode in the public parameters.
func WithSignMode(mode int) PublicOption {
	return func(o *publicOptions) {
		o.signMode = &mode
	}
}

// WithClock sets the time source used for the generated nonce and timestamp.
func WithClock(now func() time.Time) PublicOption {
	return func(o *publicOptions) {
		o.now = now
	}
}

// BuildPublicParams returns the public parameters for one request.
// An empty nonce or timestamp is generated from the clock.
func BuildPublicParams(apiVersion, accessKeyID string, opts ...PublicOption) PublicParams {
	o := &publicOptions{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	now := o.now()
	timestamp := o.timestamp
	if timestamp == "" {
		timestamp = FormatTimestamp(now)
	}
	nonce := o.nonce
	if nonce == "" {
		nonce = NewNonce(now)
	}

	return PublicParams{
		Version:          apiVersion,
		AccessKeyID:      accessKeyID,
		SignatureMethod:  SignatureMethod,
		SignatureVersion: SignatureVersion,
		SignatureNonce:   nonce,
		Timestamp:        timestamp,
		SignMode:         o.signMode,
	}
}

// FormatTimestamp renders t in UTC without fractional seconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// NewNonce returns the millisecond clock followed by one random hex digit,
// 14 characters in total. Two requests in the same millisecond collide with
// probability 1/16; collisions are not detected.
func NewNonce(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10) + strconv.FormatInt(rand.Int64N(16), 16)
}
