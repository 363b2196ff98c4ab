package models

import "time"

type Chapter struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Number    int       `json:"number" gorm:"uniqueIndex;not null"`
	Title     *string   `json:"title,omitempty"`
	Summary   *string   `json:"summary,omitempty" gorm:"type:text"`
	VolumeID  *int64    `json:"volumeId,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Volume *Volume `json:"volume,omitempty" gorm:"foreignKey:VolumeID;constraint:OnDelete:SET NULL;"`
}

func (Chapter) TableName() string {
	return "chapters"
}
