package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/templra/almacen-api/internal/domain/entity"
	"github.com/templra/almacen-api/internal/domain/repository"
)

var _ repository.InventoryLineRepository = (*InventoryLineRepo)(nil)

const inventoryLineColumns = `il.id, il.quantity_packaging, il.quantity_units, il.created_at,
	ic.id, ic.cut_off_date, ic.count_number, ic.status, ic.created_at,
	p.id, p.code, p.name, p.description, p.packaging_unit, p.conversion_factor, p.price, p.active,
	p.created_at, p.updated_at`

// InventoryLineRepo implementación del puerto InventoryLineRepository sobre
// PostgreSQL.
type InventoryLineRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryLineRepository construye el adaptador de persistencia para
// líneas de conteo.
func NewInventoryLineRepository(pool *pgxpool.Pool) *InventoryLineRepo {
	return &InventoryLineRepo{pool: pool}
}

// Create persiste una nueva línea.
func (r *InventoryLineRepo) Create(line *entity.InventoryLine) error {
	query := `
		INSERT INTO inventory_lines (id, inventory_count_id, product_id, quantity_packaging, quantity_units, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(context.Background(), query,
		line.ID, line.InventoryCount.ID, line.Product.ID,
		line.QuantityPackaging, line.QuantityUnits, line.CreatedAt,
	)
	if err != nil {
		return translateError("insert inventory line", err)
	}
	return nil
}

func scanInventoryLine(row pgx.Row) (*entity.InventoryLine, error) {
	var il entity.InventoryLine
	var ic entity.InventoryCount
	var p entity.Product
	err := row.Scan(
		&il.ID, &il.QuantityPackaging, &il.QuantityUnits, &il.CreatedAt,
		&ic.ID, &ic.CutOffDate, &ic.CountNumber, &ic.Status, &ic.CreatedAt,
		&p.ID, &p.Code, &p.Name, &p.Description, &p.PackagingUnit, &p.ConversionFactor,
		&p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	il.InventoryCount = &ic
	il.Product = &p
	return &il, nil
}

func (r *InventoryLineRepo) selectLines() squirrel.SelectBuilder {
	return builder().Select(inventoryLineColumns).
		From("inventory_lines il").
		Join("inventory_counts ic ON ic.id = il.inventory_count_id").
		Join("products p ON p.id = il.product_id")
}

// List lista líneas según el filtro, con total sin paginar. La búsqueda
// compara las cantidades convertidas a texto.
func (r *InventoryLineRepo) List(filter repository.InventoryLineFilter) ([]entity.InventoryLine, int64, error) {
	conds := squirrel.And{}
	if filter.InventoryCountID != "" {
		conds = append(conds, squirrel.Eq{"il.inventory_count_id": filter.InventoryCountID})
	}
	if filter.ProductID != "" {
		conds = append(conds, squirrel.Eq{"il.product_id": filter.ProductID})
	}
	if filter.Search != "" {
		term := ilike(filter.Search)
		conds = append(conds, squirrel.Or{
			squirrel.Expr("CAST(il.quantity_packaging AS TEXT) ILIKE ?", term),
			squirrel.Expr("CAST(il.quantity_units AS TEXT) ILIKE ?", term),
		})
	}
	if filter.CreatedAt != "" {
		conds = append(conds, createdAtBucket("il.created_at", filter.CreatedAt))
	}

	total, err := r.count(conds)
	if err != nil {
		return nil, 0, err
	}

	q := r.selectLines().Where(conds).OrderBy("il.created_at DESC")
	q = paginate(q, filter.Limit, filter.Page)
	items, err := r.queryLines(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByCount líneas de un conteo, de la más reciente a la más antigua.
func (r *InventoryLineRepo) ListByCount(inventoryCountID string) ([]entity.InventoryLine, error) {
	q := r.selectLines().
		Where(squirrel.Eq{"il.inventory_count_id": inventoryCountID}).
		OrderBy("il.created_at DESC")
	return r.queryLines(q)
}

// FindByID obtiene una línea por id con su conteo y producto.
func (r *InventoryLineRepo) FindByID(id string) (*entity.InventoryLine, error) {
	sql, args, err := r.selectLines().Where(squirrel.Eq{"il.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inventory line query: %w", err)
	}
	line, err := scanInventoryLine(r.pool.QueryRow(context.Background(), sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory line by id: %w", err)
	}
	return line, nil
}

// Update actualiza una línea.
func (r *InventoryLineRepo) Update(line *entity.InventoryLine) error {
	query := `
		UPDATE inventory_lines SET inventory_count_id = $2, product_id = $3,
			quantity_packaging = $4, quantity_units = $5
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		line.ID, line.InventoryCount.ID, line.Product.ID,
		line.QuantityPackaging, line.QuantityUnits,
	)
	if err != nil {
		return translateError("update inventory line", err)
	}
	return nil
}

// Delete borrado físico de la línea.
func (r *InventoryLineRepo) Delete(id string) error {
	if _, err := r.pool.Exec(context.Background(), `DELETE FROM inventory_lines WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory line: %w", err)
	}
	return nil
}

func (r *InventoryLineRepo) queryLines(q squirrel.SelectBuilder) ([]entity.InventoryLine, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inventory lines query: %w", err)
	}
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory lines: %w", err)
	}
	defer rows.Close()

	var list []entity.InventoryLine
	for rows.Next() {
		il, err := scanInventoryLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		list = append(list, *il)
	}
	return list, rows.Err()
}

func (r *InventoryLineRepo) count(conds squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder().Select("COUNT(*)").From("inventory_lines il").Where(conds).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := r.pool.QueryRow(context.Background(), sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count inventory lines: %w", err)
	}
	return total, nil
}
