package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cleared-dev/household/internal/categories"
	"github.com/cleared-dev/household/internal/config"
	"github.com/cleared-dev/household/internal/events"
	"github.com/cleared-dev/household/internal/ledger"
	"github.com/cleared-dev/household/internal/people"
	"github.com/cleared-dev/household/internal/report"
	"github.com/cleared-dev/household/internal/store"
	"github.com/cleared-dev/household/internal/store/memstore"
	"github.com/cleared-dev/household/internal/store/sqlite"
)

// app carries the loaded config and the collaborators opened from it.
type app struct {
	cfgPath string
	cfg     *config.Config

	uow       store.UnitOfWork
	publisher events.Publisher
	closers   []func() error
}

type services struct {
	people     *people.Service
	categories *categories.Service
	ledger     *ledger.Service
	reports    *report.Service
}

// open connects the store and the event publisher once per process.
func (a *app) open(ctx context.Context) (*services, error) {
	if a.uow == nil {
		if err := a.openStore(ctx); err != nil {
			return nil, err
		}
		if err := a.openPublisher(); err != nil {
			return nil, err
		}
	}
	return &services{
		people:     people.NewService(a.uow, a.publisher),
		categories: categories.NewService(a.uow, a.publisher),
		ledger:     ledger.NewService(a.uow, a.publisher),
		reports:    report.NewService(a.uow),
	}, nil
}

func (a *app) dbPath() string {
	return config.ResolvePath(a.cfgPath, a.cfg.Database.Path)
}

func (a *app) openStore(ctx context.Context) error {
	switch a.cfg.Database.Driver {
	case "memory":
		slog.Warn("using in-memory store, data is lost on exit")
		a.uow = memstore.New()
	default:
		st, err := sqlite.Open(ctx, a.dbPath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		a.uow = st
		a.closers = append(a.closers, st.Close)
	}
	return nil
}

func (a *app) openPublisher() error {
	if !a.cfg.Events.Enabled {
		a.publisher = events.Nop{}
		return nil
	}
	p, err := events.DialAMQP(a.cfg.Events.AMQPURL, a.cfg.Events.Exchange, a.cfg.Events.Queue)
	if err != nil {
		return fmt.Errorf("connecting event broker: %w", err)
	}
	a.publisher = p
	a.closers = append(a.closers, p.Close)
	return nil
}

func (a *app) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
