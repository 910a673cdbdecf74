package product

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	productColumns = `product_id, name, category, price, available_quantity, minimum_order_quantity,
		payment_option, images, demo_video, description, show_on_home, created_by, created_at, updated_at`

	listProductsQuery    = `SELECT ` + productColumns + ` FROM products ORDER BY product_id`
	listHomeQuery        = `SELECT ` + productColumns + ` FROM products WHERE show_on_home ORDER BY product_id`
	getProductByIDQuery  = `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	insertProductQuery   = `
		INSERT INTO products (name, category, price, available_quantity, minimum_order_quantity,
			payment_option, images, demo_video, description, show_on_home, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING product_id`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			category = $2,
			price = $3,
			available_quantity = $4,
			minimum_order_quantity = $5,
			payment_option = $6,
			images = $7,
			demo_video = $8,
			description = $9,
			show_on_home = $10,
			updated_at = $11
		WHERE product_id = $12`
	deleteProductQuery = `DELETE FROM products WHERE product_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List() []Product {
	return r.queryList(listProductsQuery)
}

func (r *PostgresRepository) ListHome() []Product {
	return r.queryList(listHomeQuery)
}

func (r *PostgresRepository) queryList(query string) []Product {
	rows, err := r.db.Query(query)
	if err != nil {
		return []Product{}
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			continue
		}
		products = append(products, p)
	}
	return products
}

func (r *PostgresRepository) GetByID(id int) (Product, error) {
	p, err := scanProduct(r.db.QueryRow(getProductByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(p Product) (Product, error) {
	err := r.db.QueryRow(insertProductQuery,
		p.Name, p.Category, p.Price, p.AvailableQuantity, p.MinimumOrderQuantity,
		p.PaymentOption, pq.Array(p.Images), p.DemoVideo, p.Description, p.ShowOnHome,
		p.CreatedBy, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(id int, p Product) (Product, error) {
	res, err := r.db.Exec(updateProductQuery,
		p.Name, p.Category, p.Price, p.AvailableQuantity, p.MinimumOrderQuantity,
		p.PaymentOption, pq.Array(p.Images), p.DemoVideo, p.Description, p.ShowOnHome,
		p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(id int) error {
	res, err := r.db.Exec(deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var demoVideo, createdAt, updatedAt sql.NullString
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.AvailableQuantity,
		&p.MinimumOrderQuantity, &p.PaymentOption, pq.Array(&p.Images), &demoVideo,
		&p.Description, &p.ShowOnHome, &p.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return Product{}, err
	}
	p.DemoVideo = demoVideo.String
	p.CreatedAt = createdAt.String
	p.UpdatedAt = updatedAt.String
	return p, nil
}
