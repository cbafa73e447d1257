package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

type transactions struct{ tx *sql.Tx }

const selectTransaction = `SELECT id, description, amount, type, category_id, person_id, occurred_at FROM transactions`

func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var t model.Transaction
	var typ, occurred string
	if err := row.Scan(&t.ID, &t.Description, &t.Amount, &typ, &t.CategoryID, &t.PersonID, &occurred); err != nil {
		return model.Transaction{}, err
	}
	t.Type = model.TransactionType(typ)
	if occurred != "" {
		date, err := time.Parse(time.RFC3339Nano, occurred)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing occurred_at %q: %w", occurred, err)
		}
		t.Date = date
	}
	return t, nil
}

func (r transactions) query(ctx context.Context, where string, args ...any) ([]model.Transaction, error) {
	rows, err := r.tx.QueryContext(ctx, selectTransaction+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r transactions) Get(ctx context.Context, id int) (model.Transaction, error) {
	t, err := scanTransaction(r.tx.QueryRowContext(ctx, selectTransaction+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, store.ErrNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("reading transaction %d: %w", id, err)
	}
	return t, nil
}

func (r transactions) List(ctx context.Context) ([]model.Transaction, error) {
	out, err := r.query(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return out, nil
}

func (r transactions) ListByPerson(ctx context.Context, personID int) ([]model.Transaction, error) {
	out, err := r.query(ctx, ` WHERE person_id = ?`, personID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions of person %d: %w", personID, err)
	}
	return out, nil
}

func (r transactions) Add(ctx context.Context, t model.Transaction) (int, error) {
	occurred := ""
	if !t.Date.IsZero() {
		occurred = t.Date.UTC().Format(time.RFC3339Nano)
	}
	res, err := r.tx.ExecContext(ctx,
		`INSERT INTO transactions (description, amount, type, category_id, person_id, occurred_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Description, t.Amount.String(), string(t.Type), t.CategoryID, t.PersonID, occurred)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading transaction id: %w", err)
	}
	return int(id), nil
}

func (r transactions) ExistsByCategory(ctx context.Context, categoryID int) (bool, error) {
	var exists bool
	err := r.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = ?)`, categoryID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking transactions of category %d: %w", categoryID, err)
	}
	return exists, nil
}

func (r transactions) RemoveByPerson(ctx context.Context, personID int) (int, error) {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM transactions WHERE person_id = ?`, personID)
	if err != nil {
		return 0, fmt.Errorf("removing transactions of person %d: %w", personID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("removing transactions of person %d: %w", personID, err)
	}
	return int(n), nil
}
