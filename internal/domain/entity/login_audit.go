package entity

import "time"

// LoginAudit registro de auditoría de inicios de sesión exitosos (append-only).
type LoginAudit struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	LoginDate time.Time `db:"login_date" json:"loginDate"`
}
