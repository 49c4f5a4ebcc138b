package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naValues are cell contents treated as missing.
var naValues = []string{"", "NA", "NaN", "nan", "null", "<nil>"}

// LoadFile reads a trending CSV from path.
func LoadFile(path string) ([]RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	rows, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return rows, nil
}

// Load reads a trending CSV with a header row. It returns a *DataFormatError
// when a required column is absent. Cells that are empty or malformed are
// recorded in RawRecord.Missing rather than failing the load.
func Load(r io.Reader) ([]RawRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, &DataFormatError{Missing: RequiredColumns()}
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := 1; i < len(records); i++ {
		records[i] = fitRow(records[i], len(header))
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if !slices.Contains(header, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &DataFormatError{Missing: missing}
	}

	// gota rejects a header without rows; that is just an empty table here.
	if len(records) == 1 {
		return nil, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("build dataframe: %w", df.Err)
	}

	cols := make(map[string]series.Series, len(RequiredColumns()))
	for _, name := range RequiredColumns() {
		cols[name] = df.Col(name)
		if err := cols[name].Err; err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
	}

	out := make([]RawRecord, df.Nrow())
	for i := range out {
		row := &out[i]
		row.ChannelName = stringCell(cols[ColChannelName], i, ColChannelName, row)
		row.Like = countCell(cols[ColLike], i, ColLike, row)
		row.Dislike = countCell(cols[ColDislike], i, ColDislike, row)
		row.View = countCell(cols[ColView], i, ColView, row)
		row.Comment = countCell(cols[ColComment], i, ColComment, row)
		row.PublishTime = stringCell(cols[ColPublishTime], i, ColPublishTime, row)
		row.TrendingTime = stringCell(cols[ColTrendingTime], i, ColTrendingTime, row)
	}
	return out, nil
}

// fitRow pads a short row with NA cells and truncates a long one so every
// row matches the header width. Padded cells mark the row incomplete.
func fitRow(row []string, width int) []string {
	if len(row) > width {
		return row[:width]
	}
	for len(row) < width {
		row = append(row, "NA")
	}
	return row
}

func stringCell(s series.Series, i int, col string, row *RawRecord) string {
	e := s.Elem(i)
	if e.IsNA() {
		row.Missing = append(row.Missing, col)
		return ""
	}
	return e.String()
}

func countCell(s series.Series, i int, col string, row *RawRecord) int64 {
	e := s.Elem(i)
	if e.IsNA() {
		row.Missing = append(row.Missing, col)
		return 0
	}
	n, err := parseCount(e.String())
	if err != nil {
		row.Missing = append(row.Missing, col)
		return 0
	}
	return n
}

var errBadCount = errors.New("not a non-negative integer")

// parseCount accepts integers and integral floats such as "1200.0".
func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt64 {
			return 0, errBadCount
		}
		n = int64(f)
	}
	if n < 0 {
		return 0, errBadCount
	}
	return n, nil
}
