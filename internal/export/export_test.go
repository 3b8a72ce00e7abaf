package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/subtrack/internal/model"
	"github.com/theirongolddev/subtrack/internal/source"
)

var exportNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func sampleSnapshot() Snapshot {
	records := []model.Subscription{
		{
			ID: "a1", Name: "Netflix", Amount: decimal.RequireFromString("10"),
			Category: model.CategoryVideo, Emoji: "📺", BillingDay: 20,
			NextDate: model.Date{Year: 2025, Month: time.March, Day: 20},
			Currency: model.CurrencyForeign,
		},
		{
			ID: "b2", Name: "Spotify", Amount: decimal.RequireFromString("15"),
			Category: model.CategoryMusic, Emoji: "🎵", BillingDay: 11,
			NextDate: model.Date{Year: 2025, Month: time.March, Day: 11},
			Currency: model.CurrencyLocal,
		},
	}
	return NewSnapshot(records, model.DefaultRate, exportNow)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json": FormatJSON, "YAML": FormatYAML, "yml": FormatYAML,
		".csv": FormatCSV, "md": FormatMarkdown, "markdown": FormatMarkdown, "xlsx": FormatXLSX,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat(pdf) succeeded")
	}
}

func TestWrite_JSONRoundTrip(t *testing.T) {
	snap := sampleSnapshot()
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"monthly_total": "62.00"`) || !strings.Contains(out, `"annual_total": "744.00"`) {
		t.Errorf("summary missing from JSON:\n%s", out)
	}

	res := source.Parse(buf.Bytes(), ".json")
	if res.Err != nil {
		t.Fatalf("re-import: %v", res.Err)
	}
	if len(res.Records) != 2 || res.Rate != "4.7" {
		t.Fatalf("re-import = %d records, rate %q", len(res.Records), res.Rate)
	}
	if res.Records[0].ID != "a1" || !res.Records[0].Amount.Equal(snap.Records[0].Amount) {
		t.Errorf("record changed on round trip: %+v", res.Records[0])
	}
	if res.Records[1].NextDate != snap.Records[1].NextDate {
		t.Errorf("NextDate = %s, want %s", res.Records[1].NextDate, snap.Records[1].NextDate)
	}
}

func TestWrite_YAMLRoundTrip(t *testing.T) {
	snap := sampleSnapshot()
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}

	res := source.Parse(buf.Bytes(), ".yaml")
	if res.Err != nil {
		t.Fatalf("re-import: %v\n%s", res.Err, buf.String())
	}
	if len(res.Records) != 2 {
		t.Fatalf("re-import = %d records\n%s", len(res.Records), buf.String())
	}
	got := res.Records[0]
	if got.ID != "a1" || got.Currency != model.CurrencyForeign || !got.Amount.Equal(decimal.NewFromInt(10)) {
		t.Errorf("record = %+v", got)
	}
	if got.NextDate != snap.Records[0].NextDate {
		t.Errorf("NextDate = %s, want %s", got.NextDate, snap.Records[0].NextDate)
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatCSV, sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID,Name,Category") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "a1,Netflix,Video,USD,10.00,47.00,20,2025-03-20,10,normal") {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "b2,Spotify,Music,RM,15.00,15.00,11,2025-03-11,1,urgent") {
		t.Errorf("row = %q", lines[2])
	}
}

func TestWrite_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatMarkdown, sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"| ID |", "Netflix", "Monthly total", "62.00", "744.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, sampleSnapshot()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	name, err := f.GetCellValue(sheetRecords, "B2")
	if err != nil || name != "Netflix" {
		t.Errorf("B2 = %q, %v; want Netflix", name, err)
	}
	rows, err := f.GetRows(sheetRecords)
	if err != nil || len(rows) != 3 {
		t.Errorf("rows = %d, %v; want 3", len(rows), err)
	}
	total, err := f.GetCellValue(sheetSummary, "B3")
	if err != nil || total != "62" {
		t.Errorf("monthly total cell = %q, %v; want 62", total, err)
	}
}

func TestWrite_EmptySnapshot(t *testing.T) {
	snap := NewSnapshot(nil, model.DefaultRate, exportNow)
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, snap); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), `"records": []`) {
		t.Errorf("empty export should carry an empty array:\n%s", buf.String())
	}
}
