package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

type people struct{ tx *sql.Tx }

func (r people) Get(ctx context.Context, id int) (model.Person, error) {
	var p model.Person
	err := r.tx.QueryRowContext(ctx, `SELECT id, name, age FROM people WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Age)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Person{}, store.ErrNotFound
	}
	if err != nil {
		return model.Person{}, fmt.Errorf("reading person %d: %w", id, err)
	}
	return p, nil
}

func (r people) List(ctx context.Context) ([]model.Person, error) {
	rows, err := r.tx.QueryContext(ctx, `SELECT id, name, age FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	defer rows.Close()

	var out []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Age); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r people) Add(ctx context.Context, p model.Person) (int, error) {
	res, err := r.tx.ExecContext(ctx, `INSERT INTO people (name, age) VALUES (?, ?)`, p.Name, p.Age)
	if err != nil {
		return 0, fmt.Errorf("inserting person: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading person id: %w", err)
	}
	return int(id), nil
}

func (r people) Update(ctx context.Context, p model.Person) error {
	res, err := r.tx.ExecContext(ctx, `UPDATE people SET name = ?, age = ? WHERE id = ?`, p.Name, p.Age, p.ID)
	if err != nil {
		return fmt.Errorf("updating person %d: %w", p.ID, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("updating person %d: %w", p.ID, err)
	}
	return nil
}

func (r people) Remove(ctx context.Context, id int) error {
	res, err := r.tx.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("removing person %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("removing person %d: %w", id, err)
	}
	return nil
}
