// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities carry no GORM tags
// 2. Persistence models contain all GORM annotations and table mappings
// 3. ToDomain/FromDomain convert between the two
// 4. Repositories use persistence models for database operations
//
// Identifiers are stored as 36 character strings so the same models migrate
// on PostgreSQL, MySQL and SQLite. Closed enums are stored by name.
//
// Structure:
// - base.go: BaseModel and AggregateModel
// - account.go: accounts and the transaction ledger
// - location.go: the location tree and addresses
// - identity.go: users and their roles
// - store.go: stores
// - catalog.go: categories, products, tags, properties, store stock, favorites
package models
