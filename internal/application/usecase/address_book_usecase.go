package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/internal/domain/repository"
)

// AddressBookUseCase delivery addresses and payment cards saved by a branch.
type AddressBookUseCase struct {
	addresses repository.AddressRepository
	cards     repository.CardRepository
	now       func() time.Time
}

// NewAddressBookUseCase builds the use case.
func NewAddressBookUseCase(addresses repository.AddressRepository, cards repository.CardRepository) *AddressBookUseCase {
	return &AddressBookUseCase{addresses: addresses, cards: cards, now: time.Now}
}

// AddAddress saves a delivery address for the branch.
func (uc *AddressBookUseCase) AddAddress(ctx context.Context, branchID string, in dto.AddressRequest) (*dto.AddressResponse, error) {
	a := &entity.DeliveryAddress{
		ID:           uuid.New().String(),
		BranchID:     branchID,
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: strings.TrimSpace(in.AddressLine2),
		County:       strings.TrimSpace(in.County),
		Postcode:     strings.ToUpper(strings.TrimSpace(in.Postcode)),
		TownCity:     strings.TrimSpace(in.TownCity),
		CreatedAt:    uc.now(),
	}
	if err := uc.addresses.Create(ctx, a); err != nil {
		return nil, err
	}
	return toAddressResponse(a), nil
}

// ListAddresses returns the branch's addresses.
func (uc *AddressBookUseCase) ListAddresses(ctx context.Context, branchID string) ([]dto.AddressResponse, error) {
	list, err := uc.addresses.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AddressResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAddressResponse(a))
	}
	return out, nil
}

// AddCard saves a payment card. The expiry (MM/YY) must not be in the past.
func (uc *AddressBookUseCase) AddCard(ctx context.Context, branchID string, in dto.CardRequest) (*dto.CardResponse, error) {
	if err := checkExpiry(in.ExpiryDate, uc.now()); err != nil {
		return nil, err
	}
	c := &entity.Card{
		ID:             uuid.New().String(),
		BranchID:       branchID,
		CardHolderName: strings.TrimSpace(in.CardHolderName),
		CardNumber:     strings.ReplaceAll(in.CardNumber, " ", ""),
		ExpiryDate:     in.ExpiryDate,
		CVV:            in.CVV,
		CreatedAt:      uc.now(),
	}
	if err := uc.cards.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCardResponse(c), nil
}

// ListCards returns the branch's cards with masked numbers.
func (uc *AddressBookUseCase) ListCards(ctx context.Context, branchID string) ([]dto.CardResponse, error) {
	list, err := uc.cards.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CardResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCardResponse(c))
	}
	return out, nil
}

// checkExpiry accepts MM/YY; a card is valid through the last day of its expiry month.
func checkExpiry(expiry string, now time.Time) error {
	invalid := fmt.Errorf("%w: expiry date must be MM/YY", domain.ErrInvalidInput)
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return invalid
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return invalid
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return invalid
	}
	firstOfNext := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	if !now.Before(firstOfNext) {
		return fmt.Errorf("%w: card has expired", domain.ErrInvalidInput)
	}
	return nil
}
