package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

type categories struct{ tx *sql.Tx }

const selectCategory = `SELECT id, description, purpose FROM categories`

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	var purpose string
	if err := row.Scan(&c.ID, &c.Description, &purpose); err != nil {
		return model.Category{}, err
	}
	c.Purpose = model.CategoryPurpose(purpose)
	return c, nil
}

func (r categories) Get(ctx context.Context, id int) (model.Category, error) {
	c, err := scanCategory(r.tx.QueryRowContext(ctx, selectCategory+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, store.ErrNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("reading category %d: %w", id, err)
	}
	return c, nil
}

func (r categories) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.tx.QueryContext(ctx, selectCategory+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r categories) Add(ctx context.Context, c model.Category) (int, error) {
	res, err := r.tx.ExecContext(ctx,
		`INSERT INTO categories (description, description_key, purpose) VALUES (?, ?, ?)`,
		c.Description, model.DescriptionKey(c.Description), string(c.Purpose))
	if err != nil {
		return 0, fmt.Errorf("inserting category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading category id: %w", err)
	}
	return int(id), nil
}

func (r categories) Update(ctx context.Context, c model.Category) error {
	res, err := r.tx.ExecContext(ctx,
		`UPDATE categories SET description = ?, description_key = ?, purpose = ? WHERE id = ?`,
		c.Description, model.DescriptionKey(c.Description), string(c.Purpose), c.ID)
	if err != nil {
		return fmt.Errorf("updating category %d: %w", c.ID, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("updating category %d: %w", c.ID, err)
	}
	return nil
}

func (r categories) Remove(ctx context.Context, id int) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing category %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("removing category %d: %w", id, err)
	}
	return nil
}

func (r categories) DescriptionExists(ctx context.Context, description string, excludeID int) (bool, error) {
	var n int
	err := r.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE description_key = ? AND id != ?`,
		model.DescriptionKey(description), excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking category description: %w", err)
	}
	return n > 0, nil
}
