package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// PropertyRepo is the external inventory source the in-memory store reloads
// from. The matching engine itself never touches the database.
type PropertyRepo interface {
	List() ([]models.Property, error)
	GetByID(id string) (*models.Property, error)
	Upsert(property *models.Property) error
	Delete(id string) error
}

type propertyRepo struct {
	db *gorm.DB
}

func NewPropertyRepo(db *gorm.DB) PropertyRepo {
	return &propertyRepo{db: db}
}

func (r *propertyRepo) List() ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.Order("id ASC").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (r *propertyRepo) GetByID(id string) (*models.Property, error) {
	var property models.Property
	if err := r.db.First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepo) Upsert(property *models.Property) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(property).Error
}

func (r *propertyRepo) Delete(id string) error {
	return r.db.Delete(&models.Property{}, "id = ?", id).Error
}
