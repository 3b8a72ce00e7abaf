package source

import "github.com/theirongolddev/subtrack/internal/model"

// Legacy keys written by the browser version of subtrack.
const (
	LegacyRecordsKey = "subtrack-my.subscriptions"
	LegacyRateKey    = "subtrack-my.usdRate"
)

// Format identifies the shape of an import file.
type Format string

const (
	FormatWebDump Format = "web-dump"
	FormatStore   Format = "store-dump"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// ParseResult holds the output of parsing a single import file.
type ParseResult struct {
	Path        string
	Format      Format
	Records     []model.Subscription
	Rate        string // raw rate text, empty when the file carries none
	ParseErrors int
	Err         error
}
