// Package iospecies reads the input species list. The list is a CSV
// file with a header; the column "scientificName" is required and its
// absence is fatal before any network activity starts.
package iospecies

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/gnames/gnoccur/pkg/occurrence"
)

// RequiredColumn is the header name of the species name column.
const RequiredColumn = "scientificName"

// List is the parsed species list. Columns other than the required
// one are kept verbatim for the result exports.
type List struct {
	// Header is the CSV header row.
	Header []string

	// Rows are the data rows, in file order.
	Rows [][]string

	nameIdx int
}

// Load reads and validates a species list file.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SpeciesFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded below
	records, err := r.ReadAll()
	if err != nil {
		return nil, SpeciesFileError(path, err)
	}
	if len(records) == 0 {
		return nil, MissingColumnError(path)
	}

	header := records[0]
	nameIdx := -1
	for i, col := range header {
		if strings.TrimSpace(col) == RequiredColumn {
			nameIdx = i
			break
		}
	}
	if nameIdx == -1 {
		return nil, MissingColumnError(path)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		rows = append(rows, rec)
	}

	return &List{Header: header, Rows: rows, nameIdx: nameIdx}, nil
}

// Queries converts the list into species queries, preserving row
// order. class applies to every query; empty means no class filter.
func (l *List) Queries(class string) []occurrence.SpeciesQuery {
	res := make([]occurrence.SpeciesQuery, 0, len(l.Rows))
	for i := range l.Rows {
		res = append(res, occurrence.SpeciesQuery{
			ScientificName: l.name(i),
			Class:          class,
		})
	}
	return res
}

// name returns the trimmed scientific name of row i.
func (l *List) name(i int) string {
	return strings.TrimSpace(l.Rows[i][l.nameIdx])
}
