package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/models"
)

// RequirementRecord is the flat persisted snapshot of one customer's demand.
// The full requirement is stored as a JSON blob matching the API field names.
type RequirementRecord struct {
	CustomerID  string         `gorm:"type:text;primary_key" json:"customer_id"`
	Data        datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	Confidence  float64        `gorm:"type:decimal(4,3)" json:"confidence"`
	LastUpdated time.Time      `gorm:"index" json:"last_updated"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RequirementRecord) TableName() string {
	return "requirements"
}

// RequirementRepo persists demand snapshots for the dashboard. Writes are
// best-effort from the processor's point of view.
type RequirementRepo interface {
	Save(req *models.Requirement) error
	List() ([]models.Requirement, error)
}

type requirementRepo struct {
	db *gorm.DB
}

func NewRequirementRepo(db *gorm.DB) RequirementRepo {
	return &requirementRepo{db: db}
}

func (r *requirementRepo) Save(req *models.Requirement) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to serialize requirement: %w", err)
	}

	record := RequirementRecord{
		CustomerID:  req.CustomerID,
		Data:        data,
		Confidence:  req.Confidence,
		LastUpdated: req.LastUpdated,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "confidence", "last_updated", "updated_at"}),
	}).Create(&record).Error
}

func (r *requirementRepo) List() ([]models.Requirement, error) {
	var records []RequirementRecord
	if err := r.db.Order("last_updated DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}

	out := make([]models.Requirement, 0, len(records))
	for _, record := range records {
		var req models.Requirement
		if err := json.Unmarshal(record.Data, &req); err != nil {
			// Skip unreadable snapshots; the in-memory store is authoritative.
			continue
		}
		out = append(out, req)
	}
	return out, nil
}
