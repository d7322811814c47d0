package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain"
)

// translateError convierte la violación de constraint único (23505) en un
// DuplicateError de dominio con el nombre del constraint; el resto de errores
// se devuelven envueltos.
func translateError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		return &domain.DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// withTx ejecuta fn dentro de una transacción: Commit si fn devuelve nil,
// Rollback en cualquier otro caso.
func withTx(pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	ctx := context.Background()
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
