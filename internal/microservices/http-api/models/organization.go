package models

import "time"

type Organization struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Members []Character `json:"members,omitempty" gorm:"many2many:character_organizations;constraint:OnDelete:CASCADE;"`
}

func (Organization) TableName() string {
	return "organizations"
}
