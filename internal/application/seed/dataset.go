package seed

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/*.json
var dataFS embed.FS

// CountryData is the root of the location document
type CountryData struct {
	Name   string      `json:"name"`
	States []StateData `json:"states"`
}

// StateData is a state and its cities
type StateData struct {
	Name   string     `json:"name"`
	Cities []CityData `json:"cities"`
}

// CityData is a city and its area names
type CityData struct {
	Name  string   `json:"name"`
	Areas []string `json:"areas"`
}

// UserData is one seeded account holder
type UserData struct {
	UserName    string `json:"userName"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// CategoryData is a category with nested subcategories
type CategoryData struct {
	Category      string         `json:"category"`
	URL           string         `json:"url"`
	Tags          []string       `json:"tags"`
	Properties    []PropertyData `json:"properties"`
	SubCategories []CategoryData `json:"subCategories"`
}

// PropertyData declares a category property. Values is comma separated.
type PropertyData struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Filter *bool  `json:"filter"`
	Values string `json:"values"`
	Unit   string `json:"unit"`
}

// ProductData is one seeded product
type ProductData struct {
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Brand       string              `json:"brand"`
	Model       string              `json:"model"`
	Description string              `json:"description"`
	Features    []string            `json:"features"`
	Amount      float64             `json:"amount"`
	Tags        []string            `json:"tags"`
	URLs        []string            `json:"urls"`
	Properties  []PropertyValueData `json:"properties"`
}

// PropertyValueData is a product's value for a category property
type PropertyValueData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Dataset bundles every seed document
type Dataset struct {
	Country    CountryData
	Users      []UserData
	Stores     []string
	Categories []CategoryData
	Products   []ProductData
}

// DefaultStores are the merchants created on an empty database
var DefaultStores = []string{
	"SuperComNet", "StoreEcom", "CORSECA", "PETILANTEOnline", "RetailNet",
	"AkshnavOnline", "OmniTechRetail", "IWQNBecommerce", "RetailHomes", "HomeKart",
}

// LoadDataset decodes the embedded seed documents
func LoadDataset() (*Dataset, error) {
	ds := &Dataset{Stores: DefaultStores}
	docs := []struct {
		file string
		into any
	}{
		{"data/locations.json", &ds.Country},
		{"data/users.json", &ds.Users},
		{"data/categories.json", &ds.Categories},
		{"data/products.json", &ds.Products},
	}
	for _, d := range docs {
		raw, err := dataFS.ReadFile(d.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", d.file, err)
		}
		if err := json.Unmarshal(raw, d.into); err != nil {
			return nil, fmt.Errorf("decode %s: %w", d.file, err)
		}
	}
	return ds, nil
}
