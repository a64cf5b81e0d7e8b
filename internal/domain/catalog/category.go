package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/shopcart/backend/internal/domain/shared"
)

// PropertyType is the value kind of a category property
type PropertyType uint8

const (
	PropertyString PropertyType = iota + 1
	PropertyInteger
)

// String returns the string representation of PropertyType
func (t PropertyType) String() string {
	switch t {
	case PropertyString:
		return "String"
	case PropertyInteger:
		return "Integer"
	}
	return fmt.Sprintf("PropertyType(%d)", uint8(t))
}

// ParsePropertyType parses the catalog representation
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "string":
		return PropertyString, nil
	case "integer", "int":
		return PropertyInteger, nil
	}
	return 0, shared.ErrInvalidInput.WithMessage(fmt.Sprintf("unknown property type %q", s))
}

// CategoryProperty describes a filterable attribute of products in a category
type CategoryProperty struct {
	Name   string
	Type   PropertyType
	Filter bool
	Values []string
	Unit   string
}

// Category groups products and declares the properties they carry
type Category struct {
	ID         uuid.UUID
	Name       string
	URL        string
	ParentID   *uuid.UUID
	Tags       []string
	Properties []CategoryProperty
}

// Property returns the declared property with the given name
func (c *Category) Property(name string) (CategoryProperty, bool) {
	for _, p := range c.Properties {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return CategoryProperty{}, false
}

// Property is a product's value for one category property
type Property struct {
	Name  string
	Type  PropertyType
	Value string
}

// NewProperty checks value against the declared type
func NewProperty(name string, t PropertyType, value string) (Property, error) {
	value = strings.TrimSpace(value)
	switch t {
	case PropertyString:
	case PropertyInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return Property{}, shared.ErrInvalidInput.WithMessage(
				fmt.Sprintf("property %s expects an integer, got %q", name, value))
		}
	default:
		return Property{}, shared.ErrInvalidInput.WithMessage("invalid property type")
	}
	return Property{Name: name, Type: t, Value: value}, nil
}

// Int returns the integer value of an Integer property
func (p Property) Int() (int64, bool) {
	if p.Type != PropertyInteger {
		return 0, false
	}
	n, err := strconv.ParseInt(p.Value, 10, 64)
	return n, err == nil
}
