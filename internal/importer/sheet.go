package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/fekuna/kitmed-catalog-service/internal/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = apperror.Invalid("ImportUnsupportedFormat")
	ErrNoRows            = apperror.Invalid("ImportNoRows")
	ErrMissingColumn     = apperror.Invalid("ImportMissingColumn")
)

// Column names of the product sheet.
const (
	ColSKU                = "sku"
	ColSlug               = "slug"
	ColCategory           = "category"
	ColPartner            = "partner"
	ColStatus             = "status"
	ColFeatured           = "featured"
	ColNameFR             = "name_fr"
	ColNameEN             = "name_en"
	ColShortDescriptionFR = "short_description_fr"
	ColShortDescriptionEN = "short_description_en"
	ColDescriptionFR      = "description_fr"
	ColDescriptionEN      = "description_en"
	ColImages             = "images"
	ColDatasheet          = "datasheet"
)

var requiredColumns = []string{ColSKU, ColNameFR}

type Row struct {
	// Line is the 1-based line the row starts on; the header is line 1.
	Line  int
	Cells map[string]string
}

func (r Row) Get(col string) string {
	return strings.TrimSpace(r.Cells[col])
}

type Sheet struct {
	Columns []string
	Rows    []Row
}

// record is one physical row of the file with the line it starts on.
type record struct {
	line  int
	cells []string
}

// ParseSheet reads a CSV (comma or semicolon separated) or the first sheet
// of an XLSX workbook. Blank lines are skipped.
func ParseSheet(fileName string, r io.Reader) (*Sheet, error) {
	var (
		records []record
		err     error
	)
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx":
		records, err = readXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return buildSheet(records)
}

func readCSV(r io.Reader) ([]record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		cr.Comma = ';'
	}

	var records []record
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, ErrUnsupportedFormat.WithData(map[string]interface{}{"Line": parseErr.Line})
			}
			return nil, apperror.Internal(err)
		}
		// The reader skips empty lines and quoted cells may span lines.
		line, _ := cr.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
}

func readXLSX(r io.Reader) ([]record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.Internal(err)
	}
	records := make([]record, len(rows))
	for i, cells := range rows {
		records[i] = record{line: i + 1, cells: cells}
	}
	return records, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func buildSheet(records []record) (*Sheet, error) {
	if len(records) == 0 {
		return nil, ErrNoRows
	}

	header := make([]string, len(records[0].cells))
	present := map[string]bool{}
	for i, h := range records[0].cells {
		header[i] = normalizeHeader(h)
		present[header[i]] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return nil, ErrMissingColumn.WithData(map[string]interface{}{"Column": col})
		}
	}

	sheet := &Sheet{Columns: header}
	for _, rec := range records[1:] {
		row := Row{Line: rec.line, Cells: make(map[string]string, len(header))}
		blank := true
		for j, value := range rec.cells {
			if j >= len(header) || header[j] == "" {
				continue
			}
			row.Cells[header[j]] = value
			if strings.TrimSpace(value) != "" {
				blank = false
			}
		}
		if !blank {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrNoRows
	}
	return sheet, nil
}

// SplitList splits a multi-value cell on "|", ";" or new lines.
func SplitList(cell string) []string {
	parts := strings.FieldsFunc(cell, func(r rune) bool {
		return r == '|' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
