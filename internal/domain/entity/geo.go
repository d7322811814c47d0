package entity

// Datos geográficos de referencia: país → departamento → ciudad.
// Son catálogos de sólo lectura para la aplicación.

// Country país.
type Country struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Code     string `db:"code" json:"code"`
	IsActive bool   `db:"is_active" json:"isActive"`
}

// Department departamento (división administrativa de un país).
type Department struct {
	ID        string   `db:"id" json:"id"`
	Name      string   `db:"name" json:"name"`
	Code      string   `db:"code" json:"code"`
	IsActive  bool     `db:"is_active" json:"isActive"`
	CountryID string   `db:"country_id" json:"-"`
	Country   *Country `db:"-" json:"country,omitempty"`
}

// City ciudad o municipio de un departamento.
type City struct {
	ID           string      `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Code         string      `db:"code" json:"code"`
	IsActive     bool        `db:"is_active" json:"isActive"`
	DepartmentID string      `db:"department_id" json:"-"`
	Department   *Department `db:"-" json:"department,omitempty"`
}
