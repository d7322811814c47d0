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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.code, p.name, p.description, p.packaging_unit, p.conversion_factor,
	p.price, p.active, p.created_at, p.updated_at,
	cu.id, cu.name, cu.surname, cu.username, cu.type,
	uu.id, uu.name, uu.surname, uu.username, uu.type`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepo {
	return &ProductRepo{pool: pool}
}

// Create persiste el producto y sus cantidades por bodega en una transacción.
func (r *ProductRepo) Create(product *entity.Product) error {
	return withTx(r.pool, func(tx pgx.Tx) error {
		ctx := context.Background()
		var createdBy *string
		if product.CreatedBy != nil {
			createdBy = &product.CreatedBy.ID
		}
		query := `
			INSERT INTO products (id, code, name, description, packaging_unit, conversion_factor,
				price, active, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := tx.Exec(ctx, query,
			product.ID, product.Code, product.Name, product.Description, product.PackagingUnit,
			product.ConversionFactor, product.Price, product.Active, createdBy,
			product.CreatedAt, product.UpdatedAt,
		)
		if err != nil {
			return translateError("insert product", err)
		}

		for _, pw := range product.ProductWarehouses {
			_, err := tx.Exec(ctx,
				`INSERT INTO product_warehouse (id, product_id, warehouse_id, quantity, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				pw.ID, product.ID, pw.Warehouse.ID, pw.Quantity, pw.CreatedAt, pw.UpdatedAt,
			)
			if err != nil {
				return translateError("insert product quantity", err)
			}
		}
		return nil
	})
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var cuID, cuName, cuSurname, cuUsername, cuType *string
	var uuID, uuName, uuSurname, uuUsername, uuType *string
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.PackagingUnit, &p.ConversionFactor,
		&p.Price, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		&cuID, &cuName, &cuSurname, &cuUsername, &cuType,
		&uuID, &uuName, &uuSurname, &uuUsername, &uuType,
	)
	if err != nil {
		return nil, err
	}
	if cuID != nil {
		p.CreatedBy = &entity.User{ID: *cuID, Name: *cuName, Surname: cuSurname, Username: *cuUsername, Type: *cuType}
	}
	if uuID != nil {
		p.UpdatedBy = &entity.User{ID: *uuID, Name: *uuName, Surname: uuSurname, Username: *uuUsername, Type: *uuType}
	}
	return &p, nil
}

func (r *ProductRepo) selectProducts() squirrel.SelectBuilder {
	return builder().Select(productColumns).
		From("products p").
		LeftJoin("users cu ON cu.id = p.created_by").
		LeftJoin("users uu ON uu.id = p.updated_by")
}

// productListConds condiciones del listado: búsqueda general en OR sobre
// código, nombre y descripción; los filtros por campo siempre se suman en AND.
func productListConds(filter repository.ProductFilter) squirrel.And {
	conds := squirrel.And{}
	if filter.Search != "" {
		term := ilike(filter.Search)
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"p.code": term},
			squirrel.ILike{"p.name": term},
			squirrel.ILike{"p.description": term},
		})
	}
	if filter.Code != "" {
		conds = append(conds, squirrel.Eq{"p.code": filter.Code})
	}
	if filter.Name != "" {
		conds = append(conds, squirrel.ILike{"p.name": ilike(filter.Name)})
	}
	if filter.Description != "" {
		conds = append(conds, squirrel.ILike{"p.description": ilike(filter.Description)})
	}
	if filter.PackagingUnit != "" {
		conds = append(conds, squirrel.ILike{"p.packaging_unit": ilike(filter.PackagingUnit)})
	}
	if filter.WarehouseID != "" {
		conds = append(conds, squirrel.Expr(
			`EXISTS (SELECT 1 FROM product_warehouse pw WHERE pw.product_id = p.id AND pw.warehouse_id = ?)`,
			filter.WarehouseID,
		))
	}
	if filter.Active != nil {
		conds = append(conds, squirrel.Eq{"p.active": *filter.Active})
	}
	if filter.CreatedAt != "" {
		conds = append(conds, createdAtBucket("p.created_at", filter.CreatedAt))
	}
	return conds
}

// List lista productos según el filtro, con total sin paginar.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]entity.Product, int64, error) {
	conds := productListConds(filter)

	total, err := r.count(conds)
	if err != nil {
		return nil, 0, err
	}

	q := r.selectProducts().Where(conds).OrderBy("p.created_at DESC")
	q = paginate(q, filter.Limit, filter.Page)
	items, err := r.queryProducts(q)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// FindByID obtiene un producto por id con sus cantidades por bodega.
func (r *ProductRepo) FindByID(id string) (*entity.Product, error) {
	return r.findOne(squirrel.Eq{"p.id": id}, "get product by id")
}

// FindByCode obtiene un producto por código.
func (r *ProductRepo) FindByCode(code string) (*entity.Product, error) {
	return r.findOne(squirrel.Eq{"p.code": code}, "get product by code")
}

func (r *ProductRepo) findOne(cond squirrel.Sqlizer, op string) (*entity.Product, error) {
	sql, args, err := r.selectProducts().Where(cond).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build product query: %w", err)
	}
	product, err := scanProduct(r.pool.QueryRow(context.Background(), sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := r.loadQuantities([]*entity.Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

// ListByWarehouses productos con existencia en cualquiera de las bodegas
// dadas; puede repetir producto si está en varias.
func (r *ProductRepo) ListByWarehouses(warehouseIDs []string) ([]entity.Product, error) {
	q := r.selectProducts().
		Join("product_warehouse pw ON pw.product_id = p.id").
		Where(squirrel.Expr("pw.warehouse_id = ANY(?)", warehouseIDs)).
		OrderBy("p.created_at DESC")
	return r.queryProducts(q)
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	var updatedBy *string
	if product.UpdatedBy != nil {
		updatedBy = &product.UpdatedBy.ID
	}
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, packaging_unit = $5,
			conversion_factor = $6, price = $7, updated_by = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.pool.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.PackagingUnit,
		product.ConversionFactor, product.Price, updatedBy, product.UpdatedAt,
	)
	if err != nil {
		return translateError("update product", err)
	}
	return nil
}

// ReplaceQuantities sincroniza las cantidades por bodega del producto con el
// conjunto dado: upsert de lo recibido y borrado de lo que sobra.
func (r *ProductRepo) ReplaceQuantities(productID string, quantities []entity.ProductWarehouse) error {
	return withTx(r.pool, func(tx pgx.Tx) error {
		ctx := context.Background()
		keep := make([]string, 0, len(quantities))
		for _, pw := range quantities {
			keep = append(keep, pw.Warehouse.ID)
			_, err := tx.Exec(ctx,
				`INSERT INTO product_warehouse (id, product_id, warehouse_id, quantity, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (product_id, warehouse_id)
				DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
				pw.ID, productID, pw.Warehouse.ID, pw.Quantity, pw.CreatedAt, pw.UpdatedAt,
			)
			if err != nil {
				return translateError("upsert product quantity", err)
			}
		}

		if len(keep) == 0 {
			if _, err := tx.Exec(ctx, `DELETE FROM product_warehouse WHERE product_id = $1`, productID); err != nil {
				return fmt.Errorf("clear product quantities: %w", err)
			}
			return nil
		}
		_, err := tx.Exec(ctx,
			`DELETE FROM product_warehouse WHERE product_id = $1 AND warehouse_id != ALL($2)`,
			productID, keep,
		)
		if err != nil {
			return fmt.Errorf("prune product quantities: %w", err)
		}
		return nil
	})
}

// SetActive cambia la marca de activo (baja/reactivación lógica).
func (r *ProductRepo) SetActive(id string, active bool) error {
	query := `UPDATE products SET active = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.pool.Exec(context.Background(), query, id, active); err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

func (r *ProductRepo) queryProducts(q squirrel.SelectBuilder) ([]entity.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*entity.Product, 0, len(list))
	for i := range list {
		refs = append(refs, &list[i])
	}
	if err := r.loadQuantities(refs); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) count(conds squirrel.Sqlizer) (int64, error) {
	sql, args, err := builder().Select("COUNT(*)").From("products p").Where(conds).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}
	var total int64
	if err := r.pool.QueryRow(context.Background(), sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// loadQuantities carga en bloque las cantidades por bodega de los productos
// dados, con su bodega.
func (r *ProductRepo) loadQuantities(products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, 0, len(products))
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; ok {
			continue
		}
		ids = append(ids, p.ID)
		byID[p.ID] = p
	}

	query := `
		SELECT pw.id, pw.product_id, pw.quantity, pw.created_at, pw.updated_at,
			w.id, w.code, w.name, w.address, w.phone, w.active, w.created_at, w.updated_at
		FROM product_warehouse pw
		JOIN warehouses w ON w.id = pw.warehouse_id
		WHERE pw.product_id = ANY($1)
		ORDER BY pw.created_at ASC`
	rows, err := r.pool.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load product quantities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pw entity.ProductWarehouse
		var w entity.Warehouse
		err := rows.Scan(&pw.ID, &pw.ProductID, &pw.Quantity, &pw.CreatedAt, &pw.UpdatedAt,
			&w.ID, &w.Code, &w.Name, &w.Address, &w.Phone, &w.Active, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return fmt.Errorf("scan product quantity: %w", err)
		}
		pw.Warehouse = &w
		if p, ok := byID[pw.ProductID]; ok {
			p.ProductWarehouses = append(p.ProductWarehouses, pw)
		}
	}
	return rows.Err()
}
