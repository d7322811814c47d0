package repository

import "github.com/templra/almacen-api/internal/domain/entity"

// LoginAuditRepository registro append-only de inicios de sesión.
type LoginAuditRepository interface {
	Create(audit *entity.LoginAudit) error
}
