package merge

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadRows parses CSV data whose first record is the header.
// A leading byte order mark is removed and UTF-16 input with a BOM is decoded.
// Records shorter than the header omit the trailing fields; extra values are ignored.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrReadRows, err)
	}

	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		seen[name] = struct{}{}
	}

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadRows, err)
		}

		n := min(len(record), len(header))
		fields := make([]Field, n)
		for i := range n {
			fields[i] = Field{Name: header[i], Value: record[i]}
		}
		rows = append(rows, NewRow(fields...))
	}
}

// ReadRowsFile reads rows from the CSV file at path.
func ReadRowsFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadRows, err)
	}
	defer f.Close()

	return ReadRows(f)
}
