package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

var _ repository.InventoryCountRepository = (*InventoryCountRepo)(nil)

const inventoryCountColumns = `ic.id, ic.cut_off_date, ic.count_number, ic.status, ic.created_at,
	w.id, w.code, w.name, w.address, w.phone, w.active, w.created_at, w.updated_at,
	u.id, u.name, u.surname, u.username, u.type`

// InventoryCountRepo implementación del puerto InventoryCountRepository sobre
// PostgreSQL.
type InventoryCountRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryCountRepository construye el adaptador de persistencia para
// conteos de inventario.
func NewInventoryCountRepository(pool *pgxpool.Pool) *InventoryCountRepo {
	return &InventoryCountRepo{pool: pool}
}

// Create persiste un nuevo conteo.
func (r *InventoryCountRepo) Create(count *entity.InventoryCount) error {
	var createdBy *string
	if count.CreatedBy != nil {
		createdBy = &count.CreatedBy.ID
	}
	query := `
		INSERT INTO inventory_counts (id, warehouse_id, cut_off_date, count_number, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(context.Background(), query,
		count.ID, count.Warehouse.ID, count.CutOffDate, count.CountNumber, count.Status,
		createdBy, count.CreatedAt,
	)
	if err != nil {
		return translateError("insert inventory count", err)
	}
	return nil
}

func scanInventoryCount(row pgx.Row) (*entity.InventoryCount, error) {
	var ic entity.InventoryCount
	var w entity.Warehouse
	var uID, uName, uUsername, uType *string
	var uSurname *string
	err := row.Scan(
		&ic.ID, &ic.CutOffDate, &ic.CountNumber, &ic.Status, &ic.CreatedAt,
		&w.ID, &w.Code, &w.Name, &w.Address, &w.Phone, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		&uID, &uName, &uSurname, &uUsername, &uType,
	)
	if err != nil {
		return nil, err
	}
	ic.Warehouse = &w
	if uID != nil {
		ic.CreatedBy = &entity.User{ID: *uID, Name: *uName, Surname: uSurname, Username: *uUsername, Type: *uType}
	}
	return &ic, nil
}

// ListByWarehouseMonth conteos de la bodega cuyo corte cae en el año y mes
// dados, por número de conteo.
func (r *InventoryCountRepo) ListByWarehouseMonth(warehouseID string, year, month int) ([]entity.InventoryCount, error) {
	query := `
		SELECT ` + inventoryCountColumns + `
		FROM inventory_counts ic
		JOIN warehouses w ON w.id = ic.warehouse_id
		LEFT JOIN users u ON u.id = ic.created_by
		WHERE ic.warehouse_id = $1
			AND EXTRACT(YEAR FROM ic.cut_off_date) = $2
			AND EXTRACT(MONTH FROM ic.cut_off_date) = $3
		ORDER BY ic.count_number ASC`
	rows, err := r.pool.Query(context.Background(), query, warehouseID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list inventory counts: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryCount
	for rows.Next() {
		ic, err := scanInventoryCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory count: %w", err)
		}
		list = append(list, *ic)
	}
	return list, rows.Err()
}

// FindByID obtiene un conteo por id con su bodega y creador.
func (r *InventoryCountRepo) FindByID(id string) (*entity.InventoryCount, error) {
	query := `
		SELECT ` + inventoryCountColumns + `
		FROM inventory_counts ic
		JOIN warehouses w ON w.id = ic.warehouse_id
		LEFT JOIN users u ON u.id = ic.created_by
		WHERE ic.id = $1`
	count, err := scanInventoryCount(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory count by id: %w", err)
	}
	return count, nil
}

// SetStatus abre o cierra el conteo.
func (r *InventoryCountRepo) SetStatus(id string, status bool) error {
	query := `UPDATE inventory_counts SET status = $2 WHERE id = $1`
	if _, err := r.pool.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("set inventory count status: %w", err)
	}
	return nil
}
