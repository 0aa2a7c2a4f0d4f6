package postgres

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/clinica-vet-api/internal/domain/repository"
)

var _ repository.UnitOfWork = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Ante deadlock (40P01) o fallo de serialización (40001) reintenta la transacción completa.
type TxRunner struct {
	pool        *pgxpool.Pool
	maxAttempts int
	backoff     time.Duration
	log         zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, maxAttempts int, log zerolog.Logger) *TxRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TxRunner{pool: pool, maxAttempts: maxAttempts, backoff: 50 * time.Millisecond, log: log}
}

// Repos devuelve repositorios sobre el pool, fuera de transacción.
func (r *TxRunner) Repos() repository.TxRepos {
	return reposFor(r.pool)
}

func reposFor(q Querier) repository.TxRepos {
	return repository.TxRepos{
		Products:     NewProductRepository(q),
		Movements:    NewInventoryMovementRepository(q),
		Services:     NewServiceRepository(q),
		Sales:        NewSaleRepository(q),
		CashFlow:     NewCashFlowRepository(q),
		Appointments: NewAppointmentRepository(q),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || attempt == r.maxAttempts {
			return err
		}
		wait := r.backoff * time.Duration(attempt)
		wait += time.Duration(rand.Int63n(int64(wait)/5 + 1))
		r.log.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", r.maxAttempts).
			Dur("wait", wait).
			Msg("transacción en conflicto, reintentando")
		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(wait):
		}
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx repository.TxRepos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(reposFor(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
