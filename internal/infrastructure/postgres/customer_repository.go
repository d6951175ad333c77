package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, search_name, phone, address_line1, address_line2, city, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.SearchName, customer.Phone,
		customer.Address.Line1, customer.Address.Line2, customer.Address.City, customer.Address.PostalCode,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `
		SELECT id, name, search_name, phone, address_line1, address_line2, city, postal_code, created_at, updated_at
		FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.SearchName, &c.Phone,
		&c.Address.Line1, &c.Address.Line2, &c.Address.City, &c.Address.PostalCode,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Search lista clientes cuyo nombre normalizado, teléfono o ciudad contienen q.
// q llega ya normalizado (minúsculas, sin tildes); con q vacío lista todos.
func (r *CustomerRepo) Search(q string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT id, name, search_name, phone, address_line1, address_line2, city, postal_code, created_at, updated_at
		FROM customers
		WHERE $1 = '' OR search_name LIKE '%' || $1 || '%' OR phone LIKE '%' || $1 || '%' OR lower(city) LIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.SearchName, &c.Phone,
			&c.Address.Line1, &c.Address.Line2, &c.Address.City, &c.Address.PostalCode,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, search_name = $3, phone = $4,
			address_line1 = $5, address_line2 = $6, city = $7, postal_code = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.SearchName, customer.Phone,
		customer.Address.Line1, customer.Address.Line2, customer.Address.City, customer.Address.PostalCode,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrDataIntegrity
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// CountOrders devuelve el número de pedidos del cliente.
func (r *CustomerRepo) CountOrders(customerID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM orders WHERE customer_id = $1`, customerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customer orders: %w", err)
	}
	return n, nil
}
