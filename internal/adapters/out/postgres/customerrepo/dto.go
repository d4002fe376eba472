// Package customerrepo persists customers, their addresses and their store-scoped generic attributes.
package customerrepo

import (
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email             string     `gorm:"index"`
	BillingAddressID  *uuid.UUID `gorm:"type:uuid"`
	ShippingAddressID *uuid.UUID `gorm:"type:uuid"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type AddressDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CountryCode   string    `gorm:"size:2"`
	StateProvince string
	City          string
	ZipPostalCode string
	Address1      string
}

func (AddressDTO) TableName() string {
	return "addresses"
}

// AttributeDTO is a key/value pair attached to a customer for one store.
type AttributeDTO struct {
	ID         uint      `gorm:"primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_customer_attribute"`
	Key        string    `gorm:"not null;uniqueIndex:idx_customer_attribute"`
	StoreID    int       `gorm:"not null;uniqueIndex:idx_customer_attribute"`
	Value      string    `gorm:"not null"`
}

func (AttributeDTO) TableName() string {
	return "customer_attributes"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:                c.ID().Bytes(),
		Email:             c.Email(),
		BillingAddressID:  rawID(c.BillingAddressID()),
		ShippingAddressID: rawID(c.ShippingAddressID()),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	billing, err := domainID(dto.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shipping, err := domainID(dto.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(id, dto.Email, billing, shipping)
}

func addressToDomain(dto AddressDTO) (*customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return &customer.Address{
		ID:            id,
		CountryCode:   dto.CountryCode,
		StateProvince: dto.StateProvince,
		City:          dto.City,
		ZipPostalCode: dto.ZipPostalCode,
		Address1:      dto.Address1,
	}, nil
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
