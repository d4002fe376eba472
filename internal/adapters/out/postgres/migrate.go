package postgres

import (
	"ordersapi/internal/adapters/out/postgres/activityrepo"
	"ordersapi/internal/adapters/out/postgres/cartrepo"
	"ordersapi/internal/adapters/out/postgres/catalogrepo"
	"ordersapi/internal/adapters/out/postgres/customerrepo"
	"ordersapi/internal/adapters/out/postgres/orderrepo"
	"ordersapi/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Models lists every persisted table in migration order.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&customerrepo.AddressDTO{},
		&customerrepo.AttributeDTO{},
		&catalogrepo.ProductDTO{},
		&cartrepo.EntryDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderNoteDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentItemDTO{},
		&activityrepo.EntryDTO{},
	}
}

// Migrate creates or alters the schema to match the DTOs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
