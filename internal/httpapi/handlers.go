package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/household/internal/ledger"
	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/report"
)

type idResponse struct {
	ID int `json:"id"`
}

// People

type personRequest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type personResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func toPerson(p model.Person) personResponse {
	return personResponse{ID: p.ID, Name: p.Name, Age: p.Age}
}

func (s *Server) createPerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.svc.People.Create(r.Context(), req.Name, req.Age)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) listPeople(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.People.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]personResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPerson(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, ok, err := s.svc.People.Get(r.Context(), id)
	if err == nil && !ok {
		err = model.NotFoundError{Entity: "person", ID: id}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPerson(p))
}

func (s *Server) updatePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req personRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.svc.People.Update(r.Context(), id, req.Name, req.Age)
	s.noContent(w, r, "person", id, ok, err)
}

func (s *Server) deletePerson(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "person")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.svc.People.Delete(r.Context(), id)
	s.noContent(w, r, "person", id, ok, err)
}

// Categories

type categoryRequest struct {
	Description string `json:"description"`
	Purpose     string `json:"purpose"`
}

type categoryResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Purpose     string `json:"purpose"`
}

func toCategory(c model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Description: c.Description, Purpose: string(c.Purpose)}
}

func purposeOf(s string) model.CategoryPurpose {
	return model.CategoryPurpose(strings.ToLower(strings.TrimSpace(s)))
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.svc.Categories.Create(r.Context(), req.Description, purposeOf(req.Purpose))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// listCategories filters by ?type=expense|income when given.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	var (
		list []model.Category
		err  error
	)
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, perr := model.ParseTransactionType(raw)
		if perr != nil {
			s.writeError(w, r, perr)
			return
		}
		list, err = s.svc.Categories.ListFor(r.Context(), t)
	} else {
		list, err = s.svc.Categories.List(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategory(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, ok, err := s.svc.Categories.Get(r.Context(), id)
	if err == nil && !ok {
		err = model.NotFoundError{Entity: "category", ID: id}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategory(c))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.svc.Categories.Update(r.Context(), id, req.Description, purposeOf(req.Purpose))
	s.noContent(w, r, "category", id, ok, err)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "category")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ok, err := s.svc.Categories.Delete(r.Context(), id)
	s.noContent(w, r, "category", id, ok, err)
}

// noContent answers an update or delete that reports found/not found.
func (s *Server) noContent(w http.ResponseWriter, r *http.Request, entity string, id int, ok bool, err error) {
	if err == nil && !ok {
		err = model.NotFoundError{Entity: entity, ID: id}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Transactions

type transactionRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	CategoryID  int             `json:"category_id"`
	PersonID    int             `json:"person_id"`
	Date        string          `json:"date,omitempty"`
}

type transactionResponse struct {
	ID                  int             `json:"id"`
	Description         string          `json:"description"`
	Amount              decimal.Decimal `json:"amount"`
	Type                string          `json:"type"`
	Date                time.Time       `json:"date"`
	CategoryID          int             `json:"category_id"`
	CategoryDescription string          `json:"category"`
	CategoryPurpose     string          `json:"category_purpose"`
	PersonID            int             `json:"person_id"`
	PersonName          string          `json:"person"`
}

func toTransaction(v ledger.View) transactionResponse {
	return transactionResponse{
		ID:                  v.ID,
		Description:         v.Description,
		Amount:              v.Amount,
		Type:                string(v.Type),
		Date:                v.Date,
		CategoryID:          v.CategoryID,
		CategoryDescription: v.CategoryDescription,
		CategoryPurpose:     string(v.CategoryPurpose),
		PersonID:            v.PersonID,
		PersonName:          v.PersonName,
	}
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, model.ValidationError{Field: "date", Description: "date must be YYYY-MM-DD or RFC 3339"}
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.svc.Ledger.Create(r.Context(), ledger.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        model.TransactionType(strings.ToLower(strings.TrimSpace(req.Type))),
		CategoryID:  req.CategoryID,
		PersonID:    req.PersonID,
		Date:        date,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Ledger.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toTransaction(v))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "transaction")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, ok, err := s.svc.Ledger.Get(r.Context(), id)
	if err == nil && !ok {
		err = model.NotFoundError{Entity: "transaction", ID: id}
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransaction(v))
}

func (s *Server) exportTransactions(w http.ResponseWriter, r *http.Request) {
	views, err := s.svc.Ledger.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := ledger.WriteCSV(w, views); err != nil {
		slog.ErrorContext(r.Context(), "writing CSV export", "request_id", RequestID(r.Context()), "error", err)
	}
}

// Reports

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type personTotalsResponse struct {
	PersonID   int    `json:"person_id"`
	PersonName string `json:"person"`
	totalsResponse
}

type reportResponse struct {
	People []personTotalsResponse `json:"people"`
	Total  totalsResponse         `json:"total"`
}

func toTotals(t report.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

func (s *Server) totalsByPerson(w http.ResponseWriter, r *http.Request) {
	rows, total, err := s.svc.Reports.TotalsByPerson(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := reportResponse{People: make([]personTotalsResponse, 0, len(rows)), Total: toTotals(total)}
	for _, row := range rows {
		out.People = append(out.People, personTotalsResponse{
			PersonID:       row.PersonID,
			PersonName:     row.PersonName,
			totalsResponse: toTotals(row.Totals),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
