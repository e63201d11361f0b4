package usecase

import (
	"github.com/jhoicas/wholesale-api/internal/application/dto"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
)

func toAddressDTO(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{Street: a.Street, City: a.City, Postcode: a.Postcode}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         u.Email,
		Role:          u.Role,
		Address:       toAddressDTO(u.Address),
		PaymentMethod: u.PaymentMethod,
		Status:        u.Status,
		CreatedAt:     u.CreatedAt,
	}
}

func toUserSummary(u *entity.User) *dto.UserSummary {
	if u == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Email:         u.Email,
		Address:       toAddressDTO(u.Address),
		PaymentMethod: u.PaymentMethod,
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	out := &dto.SupplierResponse{
		ID:        s.ID,
		Icon:      s.Icon,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   toAddressDTO(s.Address),
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
	if s.Holidays != nil {
		out.Holidays = &dto.HolidayResponse{ID: s.Holidays.ID, Holidays: s.Holidays.Dates}
	}
	return out
}

func toSupplierSummary(s *entity.Supplier) *dto.SupplierSummary {
	if s == nil {
		return nil
	}
	return &dto.SupplierSummary{
		ID:      s.ID,
		Name:    s.Name,
		Email:   s.Email,
		Phone:   s.Phone,
		Address: toAddressDTO(s.Address),
	}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Image: c.Image, CreatedAt: c.CreatedAt}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Supplier:    dto.RefDTO{ID: p.SupplierID, Name: p.SupplierName},
		Category:    dto.RefDTO{ID: p.CategoryID, Name: p.CategoryName},
		Image:       p.Image,
		Name:        p.Name,
		SKU:         p.SKU,
		Price:       p.Price,
		VAT:         p.VAT,
		Status:      p.Status,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func toAddressResponse(a *entity.DeliveryAddress) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:           a.ID,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		County:       a.County,
		Postcode:     a.Postcode,
		TownCity:     a.TownCity,
		CreatedAt:    a.CreatedAt,
	}
}

// toCardResponse never exposes the CVV; the number is masked.
func toCardResponse(c *entity.Card) *dto.CardResponse {
	return &dto.CardResponse{
		ID:             c.ID,
		CardHolderName: c.CardHolderName,
		CardNumber:     c.MaskedNumber(),
		ExpiryDate:     c.ExpiryDate,
		CreatedAt:      c.CreatedAt,
	}
}
