package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcart/backend/internal/domain/location"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/persistence/models"
)

// GormLocationRepository implements location.Repository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Location, error) {
	var model models.LocationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByName finds a location by name, ignoring case.
// Names are not unique across the tree; the shallowest match wins.
func (r *GormLocationRepository) FindByName(ctx context.Context, name string) (*location.Location, error) {
	var rows []models.LocationModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	locs, err := models.LocationsToDomain(rows)
	if err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, shared.ErrNotFound
	}
	best := locs[0]
	for _, l := range locs[1:] {
		if l.Type < best.Type {
			best = l
		}
	}
	return &best, nil
}

// ListChildren returns the direct children of parentID having childType, ordered by name
func (r *GormLocationRepository) ListChildren(ctx context.Context, parentID uuid.UUID, childType location.Type) ([]location.Location, error) {
	var rows []models.LocationModel
	if err := r.db.WithContext(ctx).
		Where("parent_id = ? AND type = ?", parentID, childType.String()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.LocationsToDomain(rows)
}

// ListChildrenOfNamed returns the children having childType of every node
// whose name matches parentName ignoring case, ordered by name
func (r *GormLocationRepository) ListChildrenOfNamed(ctx context.Context, parentName string, childType location.Type) ([]location.Location, error) {
	parents := r.db.WithContext(ctx).
		Model(&models.LocationModel{}).
		Select("id").
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(parentName)))

	var rows []models.LocationModel
	if err := r.db.WithContext(ctx).
		Where("parent_id IN (?) AND type = ?", parents, childType.String()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.LocationsToDomain(rows)
}

// ListByType returns every location of the given type
func (r *GormLocationRepository) ListByType(ctx context.Context, t location.Type) ([]location.Location, error) {
	var rows []models.LocationModel
	if err := r.db.WithContext(ctx).
		Where("type = ?", t.String()).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return models.LocationsToDomain(rows)
}

// CreateBatch inserts locations in batches. Parents must precede their children.
func (r *GormLocationRepository) CreateBatch(ctx context.Context, locations []location.Location) error {
	if len(locations) == 0 {
		return nil
	}
	rows := make([]*models.LocationModel, 0, len(locations))
	for i := range locations {
		rows = append(rows, models.LocationModelFromDomain(&locations[i]))
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, 200).Error
}

// Count returns the number of locations
func (r *GormLocationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LocationModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ location.Repository = (*GormLocationRepository)(nil)

// GormAddressRepository implements location.AddressRepository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create inserts an address
func (r *GormAddressRepository) Create(ctx context.Context, address *location.Address) error {
	return r.db.WithContext(ctx).Create(models.AddressModelFromDomain(address)).Error
}

var _ location.AddressRepository = (*GormAddressRepository)(nil)
