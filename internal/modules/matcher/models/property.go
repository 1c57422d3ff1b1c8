package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// PropertyStatus tracks supply availability
type PropertyStatus string

const (
	StatusAvailable   PropertyStatus = "available"
	StatusMatched     PropertyStatus = "matched"
	StatusUnavailable PropertyStatus = "unavailable"
)

// Property represents one unit of supply. Prices are absolute EGP.
type Property struct {
	ID       string  `gorm:"type:text;primary_key" json:"id"`
	Title    string  `gorm:"type:text;not null" json:"title"`
	Type     string  `gorm:"type:text;not null" json:"type"`
	Location string  `gorm:"type:text" json:"location"`
	Price    float64 `gorm:"type:decimal(14,2);not null" json:"price"`
	SizeSqm  float64 `gorm:"type:decimal(10,2)" json:"sizeSqm"`

	Bedrooms  int                        `gorm:"type:integer;default:0" json:"bedrooms"`
	Bathrooms int                        `gorm:"type:integer;default:0" json:"bathrooms"`
	Amenities datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"amenities,omitempty"`

	Status  PropertyStatus `gorm:"type:varchar(20);default:'available'" json:"status"`
	AgentID string         `gorm:"type:text" json:"agent_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Property) TableName() string {
	return "properties"
}

// Validate enforces required fields before a property enters the inventory.
func (p *Property) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidProperty)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive (got %.2f)", ErrInvalidProperty, p.Price)
	}
	if p.SizeSqm < 0 {
		return fmt.Errorf("%w: size must not be negative (got %.2f)", ErrInvalidProperty, p.SizeSqm)
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		return fmt.Errorf("%w: room counts must not be negative", ErrInvalidProperty)
	}
	return nil
}

// IsAvailable reports whether the property can still be offered.
func (p *Property) IsAvailable() bool {
	return p.Status == StatusAvailable
}
