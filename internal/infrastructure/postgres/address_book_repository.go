package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

var (
	_ repository.AddressRepository = (*AddressRepo)(nil)
	_ repository.CardRepository    = (*CardRepo)(nil)
)

// AddressRepo AddressRepository over PostgreSQL.
type AddressRepo struct {
	q Querier
}

// NewAddressRepository builds the delivery address adapter.
func NewAddressRepository(q Querier) *AddressRepo {
	return &AddressRepo{q: q}
}

// Create persists an address.
func (r *AddressRepo) Create(ctx context.Context, a *entity.DeliveryAddress) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO addresses (id, branch_id, address_line_1, address_line_2, county, postcode, town_city, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.BranchID, a.AddressLine1, a.AddressLine2, a.County, a.Postcode, a.TownCity, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// ListByBranch returns the branch's addresses, newest first.
func (r *AddressRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.DeliveryAddress, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, branch_id, address_line_1, address_line_2, county, postcode, town_city, created_at
		FROM addresses WHERE branch_id = $1 ORDER BY created_at DESC`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var list []*entity.DeliveryAddress
	for rows.Next() {
		var a entity.DeliveryAddress
		if err := rows.Scan(&a.ID, &a.BranchID, &a.AddressLine1, &a.AddressLine2, &a.County, &a.Postcode, &a.TownCity, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// CardRepo CardRepository over PostgreSQL.
type CardRepo struct {
	q Querier
}

// NewCardRepository builds the card adapter.
func NewCardRepository(q Querier) *CardRepo {
	return &CardRepo{q: q}
}

const cardColumns = `id, branch_id, card_holder_name, card_number, expiry_date, cvv, created_at`

// Create persists a card.
func (r *CardRepo) Create(ctx context.Context, c *entity.Card) error {
	_, err := r.q.Exec(ctx, `INSERT INTO cards (`+cardColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.BranchID, c.CardHolderName, c.CardNumber, c.ExpiryDate, c.CVV, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

// GetByID returns the card or nil.
func (r *CardRepo) GetByID(ctx context.Context, id string) (*entity.Card, error) {
	c, err := scanCard(r.q.QueryRow(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}

// ListByBranch returns the branch's cards, newest first.
func (r *CardRepo) ListByBranch(ctx context.Context, branchID string) ([]*entity.Card, error) {
	rows, err := r.q.Query(ctx, `SELECT `+cardColumns+` FROM cards WHERE branch_id = $1 ORDER BY created_at DESC`, branchID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	var list []*entity.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCard(row pgx.Row) (*entity.Card, error) {
	var c entity.Card
	if err := row.Scan(&c.ID, &c.BranchID, &c.CardHolderName, &c.CardNumber, &c.ExpiryDate, &c.CVV, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
