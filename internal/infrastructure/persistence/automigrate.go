package persistence

import (
	"context"
	"fmt"

	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// AutoMigrate creates or alters every table from the GORM models.
// PostgreSQL deployments use the versioned SQL migrations instead.
func (d *Database) AutoMigrate(ctx context.Context) error {
	if err := d.DB.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
