package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/helpers"
	apperrors "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/pkg/errors"
)

// OrderRepository is everything the back office needs from order storage.
type OrderRepository interface {
	GetShippings(ctx context.Context) ([]entities.Shipping, error)
	GetShipping(ctx context.Context, id string) (*entities.Shipping, error)
	GetProductCount(ctx context.Context) (int, error)
	GetProducts(ctx context.Context) ([]entities.Product, error)
	GetPostalCarriers(ctx context.Context) ([]entities.PostalCarrier, error)
	AddShipping(ctx context.Context, shipping *entities.Shipping) error
	UpdateShipping(ctx context.Context, shipping *entities.Shipping) error
}

const selectShipping = `
SELECT s.id, s.company_name, s.contact_person, s.email, s.phone_number, s.address,
       s.city, s.postal_code, s.tracking_code, s.order_date, s.status,
       s.postal_carrier_id, pc.name, s.created_at, s.updated_at
FROM shippings s
JOIN postal_carriers pc ON pc.id = s.postal_carrier_id`

const selectOrderLines = `
SELECT ol.id, ol.order_id, ol.product_id, ol.price, ol.quantity, p.name, p.image, p.price
FROM order_lines ol
JOIN products p ON p.id = ol.product_id
WHERE ol.order_id = ANY($1)
ORDER BY ol.id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

type orderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewOrderRepository(db *sql.DB, log *logrus.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log,
	}
}

func (r *orderRepository) GetShippings(ctx context.Context) ([]entities.Shipping, error) {
	rows, err := r.db.QueryContext(ctx, selectShipping+` ORDER BY s.order_date DESC, s.created_at DESC`)
	if err != nil {
		r.log.WithField("error", err).Error("Failed to receive shippings from DB")
		return nil, fmt.Errorf("failed to receive shippings from DB: %w", err)
	}
	defer rows.Close()

	shippings := make([]entities.Shipping, 0)
	for rows.Next() {
		shipping, err := scanShipping(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shipping: %w", err)
		}
		shippings = append(shippings, shipping)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shippings: %w", err)
	}

	if len(shippings) == 0 {
		return shippings, nil
	}

	ids := make([]string, len(shippings))
	for i, s := range shippings {
		ids[i] = s.ID
	}

	linesByOrderID, err := r.getOrderLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range shippings {
		if lines, ok := linesByOrderID[shippings[i].ID]; ok {
			shippings[i].OrderLines = lines
		}
	}

	return shippings, nil
}

func (r *orderRepository) GetShipping(ctx context.Context, id string) (*entities.Shipping, error) {
	row := r.db.QueryRowContext(ctx, selectShipping+` WHERE s.id = $1`, id)

	shipping, err := scanShipping(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.WithFields(logrus.Fields{"order_id": id, "error": err}).Error("Failed to receive shipping from DB")
		return nil, fmt.Errorf("failed to receive shipping from DB: %w", err)
	}

	linesByOrderID, err := r.getOrderLines(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	if lines, ok := linesByOrderID[id]; ok {
		shipping.OrderLines = lines
	}

	return &shipping, nil
}

func (r *orderRepository) GetProductCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.log.WithField("error", err).Error("Failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *orderRepository) GetProducts(ctx context.Context) ([]entities.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, image, price FROM products ORDER BY name, id`)
	if err != nil {
		r.log.WithField("error", err).Error("Failed to receive products from DB")
		return nil, fmt.Errorf("failed to receive products from DB: %w", err)
	}
	defer rows.Close()

	products := make([]entities.Product, 0)
	for rows.Next() {
		var p entities.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *orderRepository) GetPostalCarriers(ctx context.Context) ([]entities.PostalCarrier, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM postal_carriers ORDER BY id`)
	if err != nil {
		r.log.WithField("error", err).Error("Failed to receive postal carriers from DB")
		return nil, fmt.Errorf("failed to receive postal carriers from DB: %w", err)
	}
	defer rows.Close()

	carriers := make([]entities.PostalCarrier, 0)
	for rows.Next() {
		var c entities.PostalCarrier
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan postal carrier: %w", err)
		}
		carriers = append(carriers, c)
	}

	return carriers, rows.Err()
}

func (r *orderRepository) AddShipping(ctx context.Context, shipping *entities.Shipping) error {
	if shipping.ID == "" {
		shipping.ID = helpers.GenerateNewID()
	}
	if shipping.OrderDate.IsZero() {
		shipping.OrderDate = time.Now().UTC()
	}
	if shipping.Status == "" {
		shipping.Status = entities.ShippingStatusPending
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin db transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO shippings (id, company_name, contact_person, email, phone_number, address,
			city, postal_code, tracking_code, order_date, status, postal_carrier_id, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`,
		shipping.ID, shipping.CompanyName, shipping.ContactPerson, shipping.Email, shipping.PhoneNumber,
		shipping.Address, shipping.City, shipping.PostalCode, shipping.TrackingCode, shipping.OrderDate,
		string(shipping.Status), shipping.PostalCarrierID, shipping.Total(),
	).Scan(&shipping.CreatedAt, &shipping.UpdatedAt)
	if err != nil {
		r.log.WithFields(logrus.Fields{"order_id": shipping.ID, "error": err}).Error("Failed to create a shipping record in the transaction")
		return fmt.Errorf("failed to create a shipping record: %w", err)
	}

	if err := r.insertOrderLines(ctx, tx, shipping); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit db transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) UpdateShipping(ctx context.Context, shipping *entities.Shipping) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin db transaction: %w", err)
	}
	defer tx.Rollback()

	orderDate := sql.NullTime{Time: shipping.OrderDate, Valid: !shipping.OrderDate.IsZero()}

	err = tx.QueryRowContext(ctx, `
		UPDATE shippings
		SET company_name = $2, contact_person = $3, email = $4, phone_number = $5, address = $6,
			city = $7, postal_code = $8, tracking_code = $9, order_date = COALESCE($10, order_date),
			status = $11, postal_carrier_id = $12, total_amount = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING order_date, created_at, updated_at`,
		shipping.ID, shipping.CompanyName, shipping.ContactPerson, shipping.Email, shipping.PhoneNumber,
		shipping.Address, shipping.City, shipping.PostalCode, shipping.TrackingCode, orderDate,
		string(shipping.Status), shipping.PostalCarrierID, shipping.Total(),
	).Scan(&shipping.OrderDate, &shipping.CreatedAt, &shipping.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		r.log.WithFields(logrus.Fields{"order_id": shipping.ID, "error": err}).Error("Failed to update a shipping record in the transaction")
		return fmt.Errorf("failed to update shipping: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, shipping.ID); err != nil {
		return fmt.Errorf("failed to clear order lines: %w", err)
	}

	if err := r.insertOrderLines(ctx, tx, shipping); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit db transaction: %w", err)
	}

	return nil
}

func (r *orderRepository) insertOrderLines(ctx context.Context, tx *sql.Tx, shipping *entities.Shipping) error {
	for i := range shipping.OrderLines {
		line := &shipping.OrderLines[i]
		line.OrderID = shipping.ID

		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_lines (order_id, product_id, price, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			line.OrderID, line.ProductID, line.Price, line.Quantity,
		).Scan(&line.ID)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"product_id": line.ProductID,
				"order_id":   line.OrderID,
				"error":      err,
			}).Error("Failed to create an order line record in the transaction")
			return fmt.Errorf("failed to create an order line record: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) getOrderLines(ctx context.Context, orderIDs []string) (map[string][]entities.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, selectOrderLines, pq.Array(orderIDs))
	if err != nil {
		r.log.WithFields(logrus.Fields{"order_ids": orderIDs, "error": err}).Error("Failed to receive order lines from DB")
		return nil, fmt.Errorf("failed to receive order lines from DB: %w", err)
	}
	defer rows.Close()

	linesByOrderID := make(map[string][]entities.OrderLine, len(orderIDs))
	for rows.Next() {
		var (
			line    entities.OrderLine
			product entities.Product
		)
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Price, &line.Quantity,
			&product.Name, &product.Image, &product.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		product.ID = line.ProductID
		line.Product = &product
		linesByOrderID[line.OrderID] = append(linesByOrderID[line.OrderID], line)
	}

	return linesByOrderID, rows.Err()
}

func scanShipping(row rowScanner) (entities.Shipping, error) {
	var (
		s           entities.Shipping
		status      string
		carrierName string
	)

	err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.Email, &s.PhoneNumber, &s.Address,
		&s.City, &s.PostalCode, &s.TrackingCode, &s.OrderDate, &status,
		&s.PostalCarrierID, &carrierName, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return entities.Shipping{}, err
	}

	s.Status = entities.ShippingStatus(status)
	s.PostalCarrier = &entities.PostalCarrier{ID: s.PostalCarrierID, Name: carrierName}
	s.OrderLines = []entities.OrderLine{}

	return s, nil
}
