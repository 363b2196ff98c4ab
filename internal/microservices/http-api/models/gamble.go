package models

import "time"

type Gamble struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"uniqueIndex;size:200;not null"`
	Description  *string   `json:"description,omitempty" gorm:"type:text"`
	Rules        string    `json:"rules" gorm:"type:text;not null;default:''"`
	WinCondition *string   `json:"winCondition,omitempty" gorm:"type:text"`
	StartChapter int       `json:"startChapter" gorm:"not null;index"`
	EndChapter   *int      `json:"endChapter,omitempty"`
	ArcID        *int64    `json:"arcId,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Arc          *Arc        `json:"arc,omitempty" gorm:"foreignKey:ArcID;constraint:OnDelete:SET NULL;"`
	Participants []Character `json:"participants,omitempty" gorm:"many2many:gamble_participants;constraint:OnDelete:CASCADE;"`
}

func (Gamble) TableName() string {
	return "gambles"
}
