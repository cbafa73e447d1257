package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Header is the CSV header for transaction exports.
const Header = "id,date,description,amount,type,category_id,category,purpose,person_id,person"

const (
	numFields    = 10
	colID        = 0
	colDate      = 1
	colDesc      = 2
	colAmount    = 3
	colType      = 4
	colCatID     = 5
	colCategory  = 6
	colPurpose   = 7
	colPersonID  = 8
	colPerson    = 9
	exportLayout = time.RFC3339
)

// WriteCSV writes views to w, header first.
func WriteCSV(w io.Writer, views []View) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, v := range views {
		if err := cw.Write(MarshalView(v)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalView converts a View to a CSV row.
func MarshalView(v View) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(v.ID)
	if !v.Date.IsZero() {
		row[colDate] = v.Date.Format(exportLayout)
	}
	row[colDesc] = v.Description
	row[colAmount] = v.Amount.String()
	row[colType] = string(v.Type)
	row[colCatID] = strconv.Itoa(v.CategoryID)
	row[colCategory] = v.CategoryDescription
	row[colPurpose] = string(v.CategoryPurpose)
	row[colPersonID] = strconv.Itoa(v.PersonID)
	row[colPerson] = v.PersonName
	return row
}
