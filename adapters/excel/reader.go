package excel

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"demoqual/domain/core"
	"demoqual/domain/demography"
	"demoqual/internal"
	"demoqual/internal/errors"
)

// DefaultSheet is read when no sheet name is configured
const DefaultSheet = "Sheet1"

// Header aliases, matched case-insensitively after trimming
var (
	ageHeaders    = []string{"age", "âge", "ages"}
	maleHeaders   = []string{"male", "males", "men", "hommes", "homme", "h"}
	femaleHeaders = []string{"female", "females", "women", "femmes", "femme", "f"}
)

// TableReader loads an age-by-sex table from an xlsx or csv file
type TableReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewTableReader creates a reader; the file type follows the extension
func NewTableReader(filePath, sheet string, logger *internal.Logger) *TableReader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &TableReader{filePath: filePath, fileType: fileType, sheet: sheet, logger: logger}
}

// Name describes the source for logs and report metadata
func (r *TableReader) Name() string {
	return r.filePath
}

// LoadTable reads and validates the table
func (r *TableReader) LoadTable(ctx context.Context) (*demography.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.logger.Debug("[TableReader] reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}

	start := time.Now()
	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[TableReader] %d rows read in %.2fms", len(rows), float64(time.Since(start).Nanoseconds())/1e6)

	table, err := ParseRows(rows)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", r.filePath)
	}
	table.ID = core.TableID(filepath.Base(r.filePath))
	return table, nil
}

func (r *TableReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err, "failed to open Excel file")
	}
	defer f.Close()

	// Raw values: display formats such as #,##0 would otherwise reach the parser.
	rows, err := f.GetRows(r.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err, fmt.Sprintf("failed to read sheet %q", r.sheet))
	}
	return rows, nil
}

func (r *TableReader) readCSVRows() ([][]string, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err, "failed to open CSV file")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err, "failed to read CSV file")
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header line uses it instead of ','
func sniffDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// ParseRows converts a header row plus data rows into a validated table.
// Blank rows are skipped; blank count cells read as zero.
func ParseRows(rows [][]string) (*demography.Table, error) {
	if len(rows) < 2 {
		return nil, errors.InvalidInput("table must have a header row and at least one data row")
	}

	ageCol, maleCol, femaleCol, err := locateColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var ages, male, female []float64
	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}

		age, err := parseCell(row, ageCol, false)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: age: %v", line, err))
		}
		m, err := parseCell(row, maleCol, true)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: male: %v", line, err))
		}
		f, err := parseCell(row, femaleCol, true)
		if err != nil {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d: female: %v", line, err))
		}

		ages = append(ages, age)
		male = append(male, m)
		female = append(female, f)
	}

	table, err := demography.NewTable("", ages, male, female)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err, "invalid table")
	}
	return table, nil
}

func locateColumns(header []string) (age, male, female int, err error) {
	age, male, female = -1, -1, -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch {
		case age < 0 && contains(ageHeaders, name):
			age = i
		case male < 0 && contains(maleHeaders, name):
			male = i
		case female < 0 && contains(femaleHeaders, name):
			female = i
		}
	}

	var missing []string
	if age < 0 {
		missing = append(missing, "Age")
	}
	if male < 0 {
		missing = append(missing, "Male")
	}
	if female < 0 {
		missing = append(missing, "Female")
	}
	if len(missing) > 0 {
		return 0, 0, 0, errors.InvalidInput(fmt.Sprintf("missing columns %s in header %v", strings.Join(missing, ", "), header))
	}
	return age, male, female, nil
}

func parseCell(row []string, col int, blankIsZero bool) (float64, error) {
	raw := ""
	if col < len(row) {
		raw = row[col]
	}
	raw = normalizeNumber(raw)
	if raw == "" {
		if blankIsZero {
			return 0, nil
		}
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(raw, 64)
}

// thousandsComma matches numbers grouped with commas, such as 2,637 or 1,204,000.5
var thousandsComma = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// normalizeNumber strips grouping spaces and commas and accepts a decimal
// comma when it cannot be a thousands separator
func normalizeNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
	if thousandsComma.MatchString(s) {
		return strings.ReplaceAll(s, ",", "")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return s
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
