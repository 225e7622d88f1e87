package groundtruth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const (
	commentMarker = '#'
	fieldCount    = 4
)

// ErrMalformedRow is returned for a row that cannot be parsed into a Record.
var ErrMalformedRow = errors.New("malformed expected results row")

// Record is one labeled benchmark test case.
type Record struct {
	Name       string
	Category   string
	Vulnerable bool
	CWE        int
}

// Records holds the expected results keyed by test case name.
type Records struct {
	byName     map[string]Record
	names      []string
	duplicates []string
}

// Len is the number of distinct test cases.
func (r *Records) Len() int {
	return len(r.names)
}

// Get returns the record for name.
func (r *Records) Get(name string) (Record, bool) {
	rec, ok := r.byName[name]
	return rec, ok
}

// All returns the records in ascending name order.
func (r *Records) All() []Record {
	out := make([]Record, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

// Duplicates lists names that appeared on more than one row, in order of their repeat.
// The last row for such a name is the one kept.
func (r *Records) Duplicates() []string {
	out := make([]string, len(r.duplicates))
	copy(out, r.duplicates)
	return out
}

// LoadFile reads an expected results table from path.
func LoadFile(path string) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open expected results %q: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads comma separated rows of name, category, vulnerable flag and CWE.
// Rows starting with '#' are ignored. Any malformed row fails the whole load.
func Load(r io.Reader) (*Records, error) {
	reader := csv.NewReader(r)
	reader.Comment = commentMarker
	reader.FieldsPerRecord = fieldCount
	reader.TrimLeadingSpace = true

	records := &Records{byName: make(map[string]Record)}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("failed to read expected results: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}

		if _, exists := records.byName[rec.Name]; exists {
			records.duplicates = append(records.duplicates, rec.Name)
		} else {
			records.names = append(records.names, rec.Name)
		}
		records.byName[rec.Name] = rec
	}

	sort.Strings(records.names)
	return records, nil
}

func parseRow(row []string) (Record, error) {
	name := strings.TrimSpace(row[0])
	if name == "" {
		return Record{}, fmt.Errorf("empty test name")
	}

	vulnerable, err := parseFlag(row[2])
	if err != nil {
		return Record{}, err
	}

	cwe, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil {
		return Record{}, fmt.Errorf("invalid cwe %q", row[3])
	}

	return Record{
		Name:       name,
		Category:   strings.TrimSpace(row[1]),
		Vulnerable: vulnerable,
		CWE:        cwe,
	}, nil
}

func parseFlag(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid vulnerability flag %q", value)
	}
}
