// Package export writes the subscription list in interchange formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/subtrack/internal/billing"
	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/pipeline"
)

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatXLSX     Format = "xlsx"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatCSV, FormatMarkdown, FormatXLSX}

// ParseFormat resolves a format name or common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unknown export format %q (want one of %s)", s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Snapshot is the state being exported.
type Snapshot struct {
	Records []model.Subscription
	Rate    decimal.Decimal
	Summary model.SpendSummary
	Now     time.Time
}

// NewSnapshot aggregates records at rate as of now.
func NewSnapshot(records []model.Subscription, rate decimal.Decimal, now time.Time) Snapshot {
	return Snapshot{
		Records: records,
		Rate:    rate,
		Summary: pipeline.Aggregate(records, rate),
		Now:     now,
	}
}

// document is the json/yaml export layout. Its records and rate keys match
// the store so the file can be imported again.
type document struct {
	Records []model.Subscription `json:"records" yaml:"records"`
	Rate    string               `json:"rate" yaml:"rate"`
	Summary summary              `json:"summary" yaml:"summary"`
}

type summary struct {
	Count        int    `json:"count" yaml:"count"`
	MonthlyTotal string `json:"monthly_total" yaml:"monthly_total"`
	AnnualTotal  string `json:"annual_total" yaml:"annual_total"`
	ExportedAt   string `json:"exported_at" yaml:"exported_at"`
}

func (s Snapshot) document() document {
	records := s.Records
	if records == nil {
		records = []model.Subscription{}
	}
	return document{
		Records: records,
		Rate:    s.Rate.String(),
		Summary: summary{
			Count:        len(s.Records),
			MonthlyTotal: s.Summary.Total.StringFixed(2),
			AnnualTotal:  s.Summary.Annualized.StringFixed(2),
			ExportedAt:   s.Now.Format(time.RFC3339),
		},
	}
}

// Write encodes snap to w in the given format.
func Write(w io.Writer, f Format, snap Snapshot) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(snap.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap.document()); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		tw := snap.table(false)
		_, err := io.WriteString(w, tw.RenderCSV()+"\n")
		return err
	case FormatMarkdown:
		tw := snap.table(true)
		_, err := io.WriteString(w, tw.RenderMarkdown()+"\n")
		return err
	case FormatXLSX:
		return writeXLSX(w, snap)
	}
	return fmt.Errorf("unknown export format %q", f)
}

var columns = []string{"ID", "Name", "Category", "Currency", "Amount", "Monthly (local)", "Billing Day", "Next Date", "Days Left", "Urgency"}

// row returns the column values for one record.
func (s Snapshot) row(sub model.Subscription) []interface{} {
	u := billing.UrgencyOf(sub.NextDate, s.Now)
	return []interface{}{
		sub.ID,
		sub.Name,
		string(sub.Category),
		string(sub.Currency),
		sub.Amount.StringFixed(2),
		s.Summary.Local(sub.ID).StringFixed(2),
		strconv.Itoa(sub.BillingDay),
		sub.NextDate.String(),
		strconv.Itoa(u.Days),
		u.Tier.String(),
	}
}

func (s Snapshot) table(withFooter bool) table.Writer {
	tw := table.NewWriter()

	header := make(table.Row, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, sub := range s.Records {
		tw.AppendRow(table.Row(s.row(sub)))
	}

	if withFooter {
		tw.AppendFooter(table.Row{"", "Monthly total", "", "", "", s.Summary.Total.StringFixed(2), "", "", "", ""})
		tw.AppendFooter(table.Row{"", "Annual estimate", "", "", "", s.Summary.Annualized.StringFixed(2), "", "", "", ""})
	}
	return tw
}
