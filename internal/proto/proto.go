// Package proto reads the tab-separated game data exports (mob and
// item proto tables, localized name tables, drop tables) into
// vnum-keyed in-memory tables.
package proto

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// langEncoding maps a wiki language code to the legacy code page its
// name tables are exported in.
var langEncoding = map[string]encoding.Encoding{
	"ae": charmap.Windows1256,
	"de": charmap.ISO8859_1,
	"dk": charmap.ISO8859_1,
	"en": charmap.ISO8859_1,
	"es": charmap.ISO8859_1,
	"fr": charmap.Windows1252,
	"hu": charmap.ISO8859_1,
	"it": charmap.Windows1252,
	"nl": charmap.ISO8859_1,
	"pl": charmap.Windows1252,
	"pt": charmap.ISO8859_1,
	"ro": charmap.ISO8859_16,
	"ru": charmap.Windows1251,
	"tr": charmap.Windows1252,
}

func decoderFor(lang string) *encoding.Decoder {
	enc, ok := langEncoding[lang]
	if !ok {
		enc = charmap.ISO8859_1
	}
	return enc.NewDecoder()
}

// table is one parsed TSV file: a header index plus raw rows.
type table struct {
	col  map[string]int
	rows [][]string
}

func readTSV(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing table: empty file")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	return &table{col: col, rows: records[1:]}, nil
}

func openTSV(path string, dec *encoding.Decoder) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if dec != nil {
		r = transform.NewReader(f, dec)
	}
	t, err := readTSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// str returns the named column of a row, empty when absent.
func (t *table) str(row []string, name string) string {
	i, ok := t.col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// num returns the named column as an int, zero when absent or not
// numeric.
func (t *table) num(row []string, name string) int {
	n, _ := strconv.Atoi(t.str(row, name))
	return n
}

func (t *table) float(row []string, name string) float64 {
	f, _ := strconv.ParseFloat(t.str(row, name), 64)
	return f
}

// LoadNames reads a localized name table (VNUM, LOCALE_NAME) decoded
// with the language's code page. Non-breaking spaces in names are
// normalized to plain spaces.
func LoadNames(path, lang string) (map[int]string, error) {
	t, err := openTSV(path, decoderFor(lang))
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(t.rows))
	for _, row := range t.rows {
		vnum, err := strconv.Atoi(t.str(row, "VNUM"))
		if err != nil {
			continue
		}
		name := t.str(row, "LOCALE_NAME")
		names[vnum] = strings.ReplaceAll(name, "\u00a0", " ")
	}
	return names, nil
}
