// Package table reads and writes the schedule as a semicolon-delimited table.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/models"
)

// Delimiter separates fields. Free-text fields may contain commas.
const Delimiter = ';'

// Header lists the columns in their fixed order.
var Header = []string{"id", "level", "title", "activity", "tool", "objective", "duration", "nb_sub_chapter"}

// minFields is the number of columns a row needs to take part in a merge.
// Spreadsheets drop trailing empty cells, so shorter rows that still carry a
// title are padded with empty values.
const minFields = 3

// Encode writes the header and one row per entry.
func Encode(w io.Writer, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	cw.Comma = Delimiter
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("table: write row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("table: flush: %w", err)
	}
	return nil
}

// Marshal renders entries as table bytes.
func Marshal(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a table written by Encode, possibly edited by hand. The
// header row is skipped. Numeric columns that are blank or invalid read as 0.
func Decode(r io.Reader) ([]models.Entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var out []models.Entry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: %w: %w", apperr.ErrFormat, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < minFields {
			return nil, fmt.Errorf("table: line %d: %w: %d fields, want at least %d",
				line, apperr.ErrFormat, len(rec), minFields)
		}
		out = append(out, entry(pad(rec)))
	}
	return out, nil
}

// Unmarshal parses table bytes.
func Unmarshal(data []byte) ([]models.Entry, error) {
	return Decode(bytes.NewReader(data))
}

func record(e models.Entry) []string {
	nb := ""
	if e.Level == models.LevelChapter {
		nb = strconv.Itoa(e.NbSubChapter)
	}
	return []string{
		strconv.Itoa(e.ID),
		strconv.Itoa(e.Level),
		e.Title,
		e.Activity,
		e.Tool,
		e.Objective,
		e.Duration,
		nb,
	}
}

func entry(rec []string) models.Entry {
	e := models.Entry{
		ID:        atoi(rec[0]),
		Level:     atoi(rec[1]),
		Title:     rec[2],
		Activity:  rec[3],
		Tool:      rec[4],
		Objective: rec[5],
		Duration:  rec[6],
	}
	e.NbSubChapter = atoi(rec[7])
	return e
}

func pad(rec []string) []string {
	if len(rec) >= len(Header) {
		return rec
	}
	out := make([]string, len(Header))
	copy(out, rec)
	return out
}

func isHeader(rec []string) bool {
	return len(rec) > 2 && strings.TrimPrefix(rec[0], "\ufeff") == Header[0] && rec[2] == Header[2]
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
