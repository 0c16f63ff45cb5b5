package feeds

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"shopledger/internal/core"
)

// CSVSource reads one kind's spreadsheet export from a CSV file. The first
// record is the header; header names are lowercased so the normalizer's
// column aliases match regardless of export casing. Line items, when the
// layout carries them, use the sku/qty/unit_price/unit_cost columns of
// follow-on rows that repeat the parent row's id.
type CSVSource struct {
	Path       string
	SourceKind core.TransactionKind
}

func NewCSVSource(path string, kind core.TransactionKind) *CSVSource {
	return &CSVSource{Path: path, SourceKind: kind}
}

func (s *CSVSource) Kind() core.TransactionKind { return s.SourceKind }

func (s *CSVSource) Fetch(ctx context.Context) ([]core.RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed %s: %w", s.Path, err)
	}
	defer f.Close()
	return ReadRows(f)
}

// ReadRows parses CSV content into raw rows. Rows repeating the previous
// row's id are folded into it as line items.
func ReadRows(r io.Reader) ([]core.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rows []core.RawRow
	lastID := ""
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feed row: %w", err)
		}

		fields := make(map[string]string, len(header))
		for i, v := range record {
			if i < len(header) {
				fields[header[i]] = v
			}
		}

		id := firstOf(fields, "id", "transaction_id", "no", "ref", "invoice_no", "receipt_no")
		item := core.RawItem{
			SKU:       fields["sku"],
			Qty:       fields["qty"],
			UnitPrice: firstOf(fields, "unit_price", "price"),
			UnitCost:  firstOf(fields, "unit_cost", "cost"),
		}

		if id != "" && id == lastID && len(rows) > 0 {
			// Continuation row: same id as the previous row carries another item.
			if item != (core.RawItem{}) {
				rows[len(rows)-1].Items = append(rows[len(rows)-1].Items, item)
			}
			continue
		}

		row := core.RawRow{Fields: fields}
		if item != (core.RawItem{}) {
			row.Items = append(row.Items, item)
		}
		rows = append(rows, row)
		lastID = id
	}
	return rows, nil
}

func firstOf(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(fields[k]); v != "" {
			return v
		}
	}
	return ""
}
