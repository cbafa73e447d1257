package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/household/internal/ledger"
	"github.com/cleared-dev/household/internal/model"
)

// HouseholdParser parses the native CSV layout:
//
//	date,description,amount,type,category_id,person_id
//
// date is 2006-01-02 or empty for "now". Domain rules are left to the ledger.
type HouseholdParser struct{}

const (
	householdDateFormat = "2006-01-02"
	householdNumFields  = 6
	colDate             = 0
	colDesc             = 1
	colAmount           = 2
	colType             = 3
	colCategory         = 4
	colPerson           = 5
)

// Format returns the parser name.
func (p *HouseholdParser) Format() string { return "household" }

// Parse reads a household CSV. Any malformed row fails the whole file.
func (p *HouseholdParser) Parse(r io.Reader) ([]ledger.CreateParams, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = householdNumFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading household CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var params []ledger.CreateParams
	for i, rec := range records[1:] {
		cp, err := parseHouseholdRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		params = append(params, cp)
	}
	return params, nil
}

func parseHouseholdRow(rec []string) (ledger.CreateParams, error) {
	var cp ledger.CreateParams

	if s := strings.TrimSpace(rec[colDate]); s != "" {
		d, err := time.Parse(householdDateFormat, s)
		if err != nil {
			return cp, fmt.Errorf("parsing date %q: %w", s, err)
		}
		cp.Date = &d
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[colAmount]))
	if err != nil {
		return cp, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	categoryID, err := strconv.Atoi(strings.TrimSpace(rec[colCategory]))
	if err != nil {
		return cp, fmt.Errorf("parsing category_id %q: %w", rec[colCategory], err)
	}
	personID, err := strconv.Atoi(strings.TrimSpace(rec[colPerson]))
	if err != nil {
		return cp, fmt.Errorf("parsing person_id %q: %w", rec[colPerson], err)
	}

	cp.Description = rec[colDesc]
	cp.Amount = amount
	cp.Type = model.TransactionType(strings.ToLower(strings.TrimSpace(rec[colType])))
	cp.CategoryID = categoryID
	cp.PersonID = personID
	return cp, nil
}
