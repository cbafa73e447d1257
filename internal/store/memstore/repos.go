package memstore

import (
	"context"
	"fmt"

	"github.com/cleared-dev/household/internal/model"
	"github.com/cleared-dev/household/internal/store"
)

type people struct{ tx *tx }

func (r people) Get(ctx context.Context, id int) (model.Person, error) {
	if err := r.tx.check(ctx); err != nil {
		return model.Person{}, err
	}
	p, ok := r.tx.state.people.get(id)
	if !ok {
		return model.Person{}, store.ErrNotFound
	}
	return p, nil
}

func (r people) List(ctx context.Context) ([]model.Person, error) {
	if err := r.tx.check(ctx); err != nil {
		return nil, err
	}
	return r.tx.state.people.list(), nil
}

func (r people) Add(ctx context.Context, p model.Person) (int, error) {
	if err := r.tx.check(ctx); err != nil {
		return 0, err
	}
	p.ID = r.tx.state.people.nextID()
	r.tx.state.people.insert(p.ID, p)
	return p.ID, nil
}

func (r people) Update(ctx context.Context, p model.Person) error {
	if err := r.tx.check(ctx); err != nil {
		return err
	}
	if !r.tx.state.people.replace(p.ID, p) {
		return fmt.Errorf("updating person %d: %w", p.ID, store.ErrNotFound)
	}
	return nil
}

func (r people) Remove(ctx context.Context, id int) error {
	if err := r.tx.check(ctx); err != nil {
		return err
	}
	if !r.tx.state.people.remove(id) {
		return fmt.Errorf("removing person %d: %w", id, store.ErrNotFound)
	}
	return nil
}

type categories struct{ tx *tx }

func (r categories) Get(ctx context.Context, id int) (model.Category, error) {
	if err := r.tx.check(ctx); err != nil {
		return model.Category{}, err
	}
	c, ok := r.tx.state.categories.get(id)
	if !ok {
		return model.Category{}, store.ErrNotFound
	}
	return c, nil
}

func (r categories) List(ctx context.Context) ([]model.Category, error) {
	if err := r.tx.check(ctx); err != nil {
		return nil, err
	}
	return r.tx.state.categories.list(), nil
}

func (r categories) Add(ctx context.Context, c model.Category) (int, error) {
	if err := r.tx.check(ctx); err != nil {
		return 0, err
	}
	c.ID = r.tx.state.categories.nextID()
	r.tx.state.categories.insert(c.ID, c)
	return c.ID, nil
}

func (r categories) Update(ctx context.Context, c model.Category) error {
	if err := r.tx.check(ctx); err != nil {
		return err
	}
	if !r.tx.state.categories.replace(c.ID, c) {
		return fmt.Errorf("updating category %d: %w", c.ID, store.ErrNotFound)
	}
	return nil
}

func (r categories) Remove(ctx context.Context, id int) error {
	if err := r.tx.check(ctx); err != nil {
		return err
	}
	if !r.tx.state.categories.remove(id) {
		return fmt.Errorf("removing category %d: %w", id, store.ErrNotFound)
	}
	return nil
}

func (r categories) DescriptionExists(ctx context.Context, description string, excludeID int) (bool, error) {
	if err := r.tx.check(ctx); err != nil {
		return false, err
	}
	key := model.DescriptionKey(description)
	for _, c := range r.tx.state.categories.list() {
		if c.ID != excludeID && model.DescriptionKey(c.Description) == key {
			return true, nil
		}
	}
	return false, nil
}

type transactions struct{ tx *tx }

func (r transactions) Get(ctx context.Context, id int) (model.Transaction, error) {
	if err := r.tx.check(ctx); err != nil {
		return model.Transaction{}, err
	}
	t, ok := r.tx.state.transactions.get(id)
	if !ok {
		return model.Transaction{}, store.ErrNotFound
	}
	return t, nil
}

func (r transactions) List(ctx context.Context) ([]model.Transaction, error) {
	if err := r.tx.check(ctx); err != nil {
		return nil, err
	}
	return r.tx.state.transactions.list(), nil
}

func (r transactions) ListByPerson(ctx context.Context, personID int) ([]model.Transaction, error) {
	if err := r.tx.check(ctx); err != nil {
		return nil, err
	}
	var out []model.Transaction
	for _, t := range r.tx.state.transactions.list() {
		if t.PersonID == personID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r transactions) Add(ctx context.Context, t model.Transaction) (int, error) {
	if err := r.tx.check(ctx); err != nil {
		return 0, err
	}
	t.ID = r.tx.state.transactions.nextID()
	r.tx.state.transactions.insert(t.ID, t)
	return t.ID, nil
}

func (r transactions) ExistsByCategory(ctx context.Context, categoryID int) (bool, error) {
	if err := r.tx.check(ctx); err != nil {
		return false, err
	}
	for _, t := range r.tx.state.transactions.list() {
		if t.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

func (r transactions) RemoveByPerson(ctx context.Context, personID int) (int, error) {
	if err := r.tx.check(ctx); err != nil {
		return 0, err
	}
	n := 0
	for _, t := range r.tx.state.transactions.list() {
		if t.PersonID == personID {
			r.tx.state.transactions.remove(t.ID)
			n++
		}
	}
	return n, nil
}
