package models

import "time"

// Arc is a named range of chapters. Sub-arcs point at their parent.
type Arc struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Order        int       `json:"order" gorm:"column:sort_order;default:0;index"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	StartChapter int       `json:"startChapter" gorm:"not null"`
	EndChapter   int       `json:"endChapter" gorm:"not null"`
	SeriesID     *int64    `json:"seriesId,omitempty" gorm:"index"`
	ParentID     *int64    `json:"parentId,omitempty" gorm:"index"`
	ImageURL     *string   `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Series *Series `json:"series,omitempty" gorm:"foreignKey:SeriesID;constraint:OnDelete:SET NULL;"`
}

func (Arc) TableName() string {
	return "arcs"
}
