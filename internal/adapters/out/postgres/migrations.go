package postgres

import (
	"context"
	"fmt"

	"donations/internal/adapters/out/postgres/centerrepo"
	"donations/internal/adapters/out/postgres/contentrepo"
	"donations/internal/adapters/out/postgres/deliveryrepo"
	"donations/internal/adapters/out/postgres/donationrepo"
	"donations/internal/adapters/out/postgres/donorrepo"
	"donations/internal/adapters/out/postgres/driverrepo"
	"donations/internal/adapters/out/postgres/recipientrepo"
	"donations/internal/adapters/out/postgres/wasterepo"

	"gorm.io/gorm"
)

// Models lists every table the adapter owns, in creation order.
func Models() []any {
	return []any{
		&donorrepo.DonorDTO{},
		&centerrepo.CenterDTO{},
		&donationrepo.DonationDTO{},
		&driverrepo.DeliveryPartnerDTO{},
		&recipientrepo.RecipientDTO{},
		&deliveryrepo.DeliveryDTO{},
		&wasterepo.WasteDTO{},
		&contentrepo.ContentDTO{},
	}
}

// Migrate creates or alters the schema to match Models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
