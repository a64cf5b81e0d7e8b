package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopcart/backend/internal/domain/catalog"
)

// CategoryPropertyJSON is the stored shape of a category property declaration
type CategoryPropertyJSON struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Filter bool     `json:"filter"`
	Values []string `json:"values,omitempty"`
	Unit   string   `json:"unit,omitempty"`
}

// CategoryModel is the persistence model for the Category entity.
type CategoryModel struct {
	ID         uuid.UUID              `gorm:"size:36;primaryKey"`
	Name       string                 `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	URL        string                 `gorm:"type:varchar(255)"`
	ParentID   *uuid.UUID             `gorm:"size:36;index"`
	Tags       []string               `gorm:"serializer:json;type:text"`
	Properties []CategoryPropertyJSON `gorm:"serializer:json;type:text"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() (*catalog.Category, error) {
	props := make([]catalog.CategoryProperty, 0, len(m.Properties))
	for _, p := range m.Properties {
		t, err := catalog.ParsePropertyType(p.Type)
		if err != nil {
			return nil, err
		}
		props = append(props, catalog.CategoryProperty{
			Name:   p.Name,
			Type:   t,
			Filter: p.Filter,
			Values: p.Values,
			Unit:   p.Unit,
		})
	}
	return &catalog.Category{
		ID:         m.ID,
		Name:       m.Name,
		URL:        m.URL,
		ParentID:   m.ParentID,
		Tags:       m.Tags,
		Properties: props,
	}, nil
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	props := make([]CategoryPropertyJSON, 0, len(c.Properties))
	for _, p := range c.Properties {
		props = append(props, CategoryPropertyJSON{
			Name:   p.Name,
			Type:   p.Type.String(),
			Filter: p.Filter,
			Values: p.Values,
			Unit:   p.Unit,
		})
	}
	return &CategoryModel{
		ID:         c.ID,
		Name:       c.Name,
		URL:        c.URL,
		ParentID:   c.ParentID,
		Tags:       c.Tags,
		Properties: props,
	}
}

// ProductModel is the persistence model for the Product aggregate.
// Store stock lives in StoreItemModel and is loaded separately.
type ProductModel struct {
	AggregateModel
	Name         string                 `gorm:"type:varchar(200);not null;index:idx_products_name"`
	Brand        string                 `gorm:"type:varchar(100);index:idx_products_brand"`
	Model        string                 `gorm:"type:varchar(100)"`
	Description  string                 `gorm:"type:text"`
	Features     []string               `gorm:"serializer:json;type:text"`
	Amount       decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Available    bool                   `gorm:"not null;default:false;index:idx_products_available"`
	MaxPerOrder  int                    `gorm:"not null;default:1"`
	SoldQuantity int                    `gorm:"not null;default:0"`
	CategoryID   *uuid.UUID             `gorm:"size:36;index:idx_products_category"`
	PhotoURL     string                 `gorm:"type:varchar(500)"`
	Tags         []ProductTagModel      `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	Properties   []ProductPropertyModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() (*catalog.Product, error) {
	p := &catalog.Product{
		VersionedEntity: m.ToVersioned(),
		Name:            m.Name,
		Brand:           m.Brand,
		Model:           m.Model,
		Description:     m.Description,
		Features:        m.Features,
		Amount:          m.Amount,
		Available:       m.Available,
		MaxPerOrder:     m.MaxPerOrder,
		SoldQuantity:    m.SoldQuantity,
		CategoryID:      m.CategoryID,
		PhotoURL:        m.PhotoURL,
	}
	for _, t := range m.Tags {
		p.Tags = append(p.Tags, catalog.Tag{Name: t.Name, Score: t.Score})
	}
	for _, pr := range m.Properties {
		t, err := catalog.ParsePropertyType(pr.Type)
		if err != nil {
			return nil, err
		}
		p.Properties = append(p.Properties, catalog.Property{Name: pr.Name, Type: t, Value: pr.Value})
	}
	return p, nil
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainVersioned(p.VersionedEntity)
	m.Name = p.Name
	m.Brand = p.Brand
	m.Model = p.Model
	m.Description = p.Description
	m.Features = p.Features
	m.Amount = p.Amount
	m.Available = p.Available
	m.MaxPerOrder = p.MaxPerOrder
	m.SoldQuantity = p.SoldQuantity
	m.CategoryID = p.CategoryID
	m.PhotoURL = p.PhotoURL
	m.Tags = make([]ProductTagModel, 0, len(p.Tags))
	for _, t := range p.Tags {
		m.Tags = append(m.Tags, ProductTagModel{ProductID: p.ID, Name: t.Name, Score: t.Score})
	}
	m.Properties = make([]ProductPropertyModel, 0, len(p.Properties))
	for _, pr := range p.Properties {
		m.Properties = append(m.Properties, ProductPropertyModel{
			ProductID: p.ID,
			Name:      pr.Name,
			Type:      pr.Type.String(),
			Value:     pr.Value,
		})
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductTagModel is a weighted search keyword of a product.
type ProductTagModel struct {
	ProductID uuid.UUID `gorm:"size:36;primaryKey"`
	Name      string    `gorm:"type:varchar(100);primaryKey;index:idx_product_tags_name"`
	Score     int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductTagModel) TableName() string {
	return "product_tags"
}

// ProductPropertyModel is a product's value for one category property.
type ProductPropertyModel struct {
	ProductID uuid.UUID `gorm:"size:36;primaryKey"`
	Name      string    `gorm:"type:varchar(100);primaryKey"`
	Type      string    `gorm:"type:varchar(10);not null"`
	Value     string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductPropertyModel) TableName() string {
	return "product_properties"
}

// StoreItemModel is the stock one store holds of one product.
type StoreItemModel struct {
	ID        uuid.UUID `gorm:"size:36;primaryKey"`
	ProductID uuid.UUID `gorm:"size:36;not null;uniqueIndex:idx_store_items_product_store,priority:1"`
	StoreID   uuid.UUID `gorm:"size:36;not null;uniqueIndex:idx_store_items_product_store,priority:2"`
	Quantity  int       `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StoreItemModel) TableName() string {
	return "store_items"
}

// ToDomain converts the persistence model to a domain StoreItem.
func (m *StoreItemModel) ToDomain() catalog.StoreItem {
	return catalog.StoreItem{
		ID:        m.ID,
		ProductID: m.ProductID,
		StoreID:   m.StoreID,
		Quantity:  m.Quantity,
		UpdatedAt: m.UpdatedAt,
	}
}

// StoreItemModelFromDomain creates a new persistence model from a domain StoreItem.
func StoreItemModelFromDomain(it *catalog.StoreItem) *StoreItemModel {
	return &StoreItemModel{
		ID:        it.ID,
		ProductID: it.ProductID,
		StoreID:   it.StoreID,
		Quantity:  it.Quantity,
		UpdatedAt: it.UpdatedAt,
	}
}

// ProductFavoriteModel is a user's bookmark of a product.
// The composite primary key keeps one row per pair.
type ProductFavoriteModel struct {
	UserID      uuid.UUID `gorm:"size:36;primaryKey"`
	ProductID   uuid.UUID `gorm:"size:36;primaryKey;index:idx_product_favorites_product"`
	FavoritedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductFavoriteModel) TableName() string {
	return "product_favorites"
}

// ProductFavoriteModelFromDomain creates a new persistence model from a domain ProductFavorite.
func ProductFavoriteModelFromDomain(f *catalog.ProductFavorite) *ProductFavoriteModel {
	return &ProductFavoriteModel{UserID: f.UserID, ProductID: f.ProductID, FavoritedAt: f.FavoritedAt}
}
