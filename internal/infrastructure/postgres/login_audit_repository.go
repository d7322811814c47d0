package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

var _ repository.LoginAuditRepository = (*LoginAuditRepo)(nil)

// LoginAuditRepo registro append-only de inicios de sesión sobre PostgreSQL.
type LoginAuditRepo struct {
	pool *pgxpool.Pool
}

// NewLoginAuditRepository construye el adaptador de auditoría de login.
func NewLoginAuditRepository(pool *pgxpool.Pool) *LoginAuditRepo {
	return &LoginAuditRepo{pool: pool}
}

// Create registra un inicio de sesión exitoso.
func (r *LoginAuditRepo) Create(audit *entity.LoginAudit) error {
	query := `INSERT INTO login_audits (id, username, login_date) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(context.Background(), query, audit.ID, audit.Username, audit.LoginDate); err != nil {
		return fmt.Errorf("insert login audit: %w", err)
	}
	return nil
}
