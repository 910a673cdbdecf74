package order

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `order_id, tracking_id, user_email, first_name, last_name, product_id, product_name,
		price, quantity, order_total, contact_number, delivery_address, notes, payment_status, status,
		created_at, updated_at`

	insertOrderQuery = `
		INSERT INTO orders (tracking_id, user_email, first_name, last_name, product_id, product_name,
			price, quantity, order_total, contact_number, delivery_address, notes, payment_status, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING order_id`
	listOrdersQuery        = `SELECT ` + orderColumns + ` FROM orders ORDER BY order_id DESC`
	listOrdersByEmailQuery = `SELECT ` + orderColumns + ` FROM orders WHERE user_email = $1 ORDER BY order_id DESC`
	getOrderByIDQuery      = `SELECT ` + orderColumns + ` FROM orders WHERE order_id = $1`
	updateOrderStatusQuery = `UPDATE orders SET status = $1, updated_at = $2 WHERE order_id = $3`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	err := r.db.QueryRow(insertOrderQuery,
		o.TrackingID, o.UserEmail, o.FirstName, o.LastName, o.ProductID, o.ProductName,
		o.Price, o.Quantity, o.OrderTotal, o.ContactNumber, o.DeliveryAddress, o.Notes,
		o.PaymentStatus, o.Status, o.CreatedAt, o.UpdatedAt).
		Scan(&o.ID)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) List() []Order {
	return r.queryList(listOrdersQuery)
}

func (r *PostgresRepository) ListByEmail(email string) []Order {
	return r.queryList(listOrdersByEmailQuery, email)
}

func (r *PostgresRepository) queryList(query string, args ...any) []Order {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return []Order{}
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		orders = append(orders, o)
	}
	return orders
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(id int, to Status, updatedAt string) (int, error) {
	res, err := r.db.Exec(updateOrderStatusQuery, to, updatedAt, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrNotFound
	}
	return int(n), nil
}

func scanOrder(row rowScanner) (Order, error) {
	var o Order
	var notes, updatedAt sql.NullString
	err := row.Scan(&o.ID, &o.TrackingID, &o.UserEmail, &o.FirstName, &o.LastName, &o.ProductID,
		&o.ProductName, &o.Price, &o.Quantity, &o.OrderTotal, &o.ContactNumber, &o.DeliveryAddress,
		&notes, &o.PaymentStatus, &o.Status, &o.CreatedAt, &updatedAt)
	if err != nil {
		return Order{}, err
	}
	o.Notes = notes.String
	o.UpdatedAt = updatedAt.String
	return o, nil
}
