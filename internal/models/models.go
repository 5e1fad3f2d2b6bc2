package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content kinds stored in the library
const (
	KindPromo         = "promo"
	KindEmailTemplate = "email_template"
	KindText          = "text"
	KindAgent         = "agent"
)

// SavedContent is generated copy kept by an editor for later reuse
type SavedContent struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Kind       string         `gorm:"type:varchar(50);not null;index" json:"kind"`
	Title      string         `gorm:"type:text" json:"title"`
	Body       string         `gorm:"type:text" json:"body"`
	CTA        string         `gorm:"column:cta;type:text" json:"cta"`
	HTML       string         `gorm:"column:html;type:text" json:"html,omitempty"`
	Provider   string         `gorm:"type:varchar(50);index" json:"provider"`
	Tags       datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty" swaggertype:"array,string"`
	Parameters datatypes.JSON `gorm:"type:jsonb" json:"parameters,omitempty" swaggertype:"object"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName pins the table created by the migrations
func (SavedContent) TableName() string {
	return "saved_contents"
}
