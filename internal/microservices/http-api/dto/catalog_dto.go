package dto

import "mangafandb/internal/microservices/http-api/models"

// Request bodies for canonical content. Create payloads convert with ToModel,
// update payloads are partial and apply onto the stored row with ApplyTo.

type CreateSeriesDTO struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Order       int     `json:"order"`
	Description *string `json:"description,omitempty"`
}

func (d CreateSeriesDTO) ToModel() models.Series {
	return models.Series{Name: d.Name, Order: d.Order, Description: d.Description}
}

type UpdateSeriesDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Order       *int    `json:"order,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateSeriesDTO) ApplyTo(m *models.Series) {
	setIf(&m.Name, d.Name)
	setIf(&m.Order, d.Order)
	setPtrIf(&m.Description, d.Description)
}

type CreateVolumeDTO struct {
	Number       int     `json:"number" binding:"required,min=1"`
	Title        *string `json:"title,omitempty"`
	StartChapter int     `json:"startChapter" binding:"required,min=1"`
	EndChapter   int     `json:"endChapter" binding:"required,min=1"`
	CoverURL     *string `json:"coverUrl,omitempty" binding:"omitempty,url"`
	Description  *string `json:"description,omitempty"`
}

func (d CreateVolumeDTO) ToModel() models.Volume {
	return models.Volume{
		Number:       d.Number,
		Title:        d.Title,
		StartChapter: d.StartChapter,
		EndChapter:   d.EndChapter,
		CoverURL:     d.CoverURL,
		Description:  d.Description,
	}
}

type UpdateVolumeDTO struct {
	Number       *int    `json:"number,omitempty" binding:"omitempty,min=1"`
	Title        *string `json:"title,omitempty"`
	StartChapter *int    `json:"startChapter,omitempty" binding:"omitempty,min=1"`
	EndChapter   *int    `json:"endChapter,omitempty" binding:"omitempty,min=1"`
	CoverURL     *string `json:"coverUrl,omitempty" binding:"omitempty,url"`
	Description  *string `json:"description,omitempty"`
}

func (d UpdateVolumeDTO) ApplyTo(m *models.Volume) {
	setIf(&m.Number, d.Number)
	setPtrIf(&m.Title, d.Title)
	setIf(&m.StartChapter, d.StartChapter)
	setIf(&m.EndChapter, d.EndChapter)
	setPtrIf(&m.CoverURL, d.CoverURL)
	setPtrIf(&m.Description, d.Description)
}

type CreateArcDTO struct {
	Name         string  `json:"name" binding:"required,max=200"`
	Order        int     `json:"order"`
	Description  *string `json:"description,omitempty"`
	StartChapter int     `json:"startChapter" binding:"min=0"`
	EndChapter   int     `json:"endChapter" binding:"min=0"`
	SeriesID     *int64  `json:"seriesId,omitempty"`
	ParentID     *int64  `json:"parentId,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

func (d CreateArcDTO) ToModel() models.Arc {
	return models.Arc{
		Name:         d.Name,
		Order:        d.Order,
		Description:  d.Description,
		StartChapter: d.StartChapter,
		EndChapter:   d.EndChapter,
		SeriesID:     d.SeriesID,
		ParentID:     d.ParentID,
		ImageURL:     d.ImageURL,
	}
}

type UpdateArcDTO struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Order        *int    `json:"order,omitempty"`
	Description  *string `json:"description,omitempty"`
	StartChapter *int    `json:"startChapter,omitempty" binding:"omitempty,min=0"`
	EndChapter   *int    `json:"endChapter,omitempty" binding:"omitempty,min=0"`
	SeriesID     *int64  `json:"seriesId,omitempty"`
	ParentID     *int64  `json:"parentId,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

func (d UpdateArcDTO) ApplyTo(m *models.Arc) {
	setIf(&m.Name, d.Name)
	setIf(&m.Order, d.Order)
	setPtrIf(&m.Description, d.Description)
	setIf(&m.StartChapter, d.StartChapter)
	setIf(&m.EndChapter, d.EndChapter)
	setPtrIf(&m.SeriesID, d.SeriesID)
	setPtrIf(&m.ParentID, d.ParentID)
	setPtrIf(&m.ImageURL, d.ImageURL)
}

type CreateChapterDTO struct {
	Number   int     `json:"number" binding:"required,min=1"`
	Title    *string `json:"title,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	VolumeID *int64  `json:"volumeId,omitempty"`
}

func (d CreateChapterDTO) ToModel() models.Chapter {
	return models.Chapter{Number: d.Number, Title: d.Title, Summary: d.Summary, VolumeID: d.VolumeID}
}

type UpdateChapterDTO struct {
	Number   *int    `json:"number,omitempty" binding:"omitempty,min=1"`
	Title    *string `json:"title,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	VolumeID *int64  `json:"volumeId,omitempty"`
}

func (d UpdateChapterDTO) ApplyTo(m *models.Chapter) {
	setIf(&m.Number, d.Number)
	setPtrIf(&m.Title, d.Title)
	setPtrIf(&m.Summary, d.Summary)
	setPtrIf(&m.VolumeID, d.VolumeID)
}

type CreateCharacterDTO struct {
	Name                   string   `json:"name" binding:"required,max=200"`
	AlternateNames         []string `json:"alternateNames,omitempty"`
	Description            *string  `json:"description,omitempty"`
	FirstAppearanceChapter *int     `json:"firstAppearanceChapter,omitempty" binding:"omitempty,min=0"`
	Occupation             *string  `json:"occupation,omitempty"`
	ImageURL               *string  `json:"imageUrl,omitempty" binding:"omitempty,url"`
	OrganizationIDs        []int64  `json:"organizationIds,omitempty"`
}

func (d CreateCharacterDTO) ToModel() models.Character {
	return models.Character{
		Name:                   d.Name,
		AlternateNames:         d.AlternateNames,
		Description:            d.Description,
		FirstAppearanceChapter: d.FirstAppearanceChapter,
		Occupation:             d.Occupation,
		ImageURL:               d.ImageURL,
	}
}

type UpdateCharacterDTO struct {
	Name                   *string  `json:"name,omitempty" binding:"omitempty,max=200"`
	AlternateNames         []string `json:"alternateNames,omitempty"`
	Description            *string  `json:"description,omitempty"`
	FirstAppearanceChapter *int     `json:"firstAppearanceChapter,omitempty" binding:"omitempty,min=0"`
	Occupation             *string  `json:"occupation,omitempty"`
	ImageURL               *string  `json:"imageUrl,omitempty" binding:"omitempty,url"`
}

func (d UpdateCharacterDTO) ApplyTo(m *models.Character) {
	setIf(&m.Name, d.Name)
	if d.AlternateNames != nil {
		m.AlternateNames = d.AlternateNames
	}
	setPtrIf(&m.Description, d.Description)
	setPtrIf(&m.FirstAppearanceChapter, d.FirstAppearanceChapter)
	setPtrIf(&m.Occupation, d.Occupation)
	setPtrIf(&m.ImageURL, d.ImageURL)
}

// SetIDsDTO replaces a many-to-many membership. An empty list clears it.
type SetIDsDTO struct {
	IDs []int64 `json:"ids" binding:"required"`
}

type CreateOrganizationDTO struct {
	Name        string  `json:"name" binding:"required,max=200"`
	Description *string `json:"description,omitempty"`
}

func (d CreateOrganizationDTO) ToModel() models.Organization {
	return models.Organization{Name: d.Name, Description: d.Description}
}

type UpdateOrganizationDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateOrganizationDTO) ApplyTo(m *models.Organization) {
	setIf(&m.Name, d.Name)
	setPtrIf(&m.Description, d.Description)
}

type CreateTagDTO struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description,omitempty"`
}

func (d CreateTagDTO) ToModel() models.Tag {
	return models.Tag{Name: d.Name, Description: d.Description}
}

type UpdateTagDTO struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Description *string `json:"description,omitempty"`
}

func (d UpdateTagDTO) ApplyTo(m *models.Tag) {
	setIf(&m.Name, d.Name)
	setPtrIf(&m.Description, d.Description)
}

type CreateGambleDTO struct {
	Name           string  `json:"name" binding:"required,max=200"`
	Description    *string `json:"description,omitempty"`
	Rules          string  `json:"rules"`
	WinCondition   *string `json:"winCondition,omitempty"`
	StartChapter   int     `json:"startChapter" binding:"min=0"`
	EndChapter     *int    `json:"endChapter,omitempty" binding:"omitempty,min=0"`
	ArcID          *int64  `json:"arcId,omitempty"`
	ParticipantIDs []int64 `json:"participantIds,omitempty"`
}

func (d CreateGambleDTO) ToModel() models.Gamble {
	return models.Gamble{
		Name:         d.Name,
		Description:  d.Description,
		Rules:        d.Rules,
		WinCondition: d.WinCondition,
		StartChapter: d.StartChapter,
		EndChapter:   d.EndChapter,
		ArcID:        d.ArcID,
	}
}

type UpdateGambleDTO struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Description  *string `json:"description,omitempty"`
	Rules        *string `json:"rules,omitempty"`
	WinCondition *string `json:"winCondition,omitempty"`
	StartChapter *int    `json:"startChapter,omitempty" binding:"omitempty,min=0"`
	EndChapter   *int    `json:"endChapter,omitempty" binding:"omitempty,min=0"`
	ArcID        *int64  `json:"arcId,omitempty"`
}

func (d UpdateGambleDTO) ApplyTo(m *models.Gamble) {
	setIf(&m.Name, d.Name)
	setPtrIf(&m.Description, d.Description)
	setIf(&m.Rules, d.Rules)
	setPtrIf(&m.WinCondition, d.WinCondition)
	setIf(&m.StartChapter, d.StartChapter)
	setPtrIf(&m.EndChapter, d.EndChapter)
	setPtrIf(&m.ArcID, d.ArcID)
}

type CreateBadgeDTO struct {
	Name                string           `json:"name" binding:"required,max=100"`
	Description         string           `json:"description"`
	Type                models.BadgeType `json:"type" binding:"required,oneof=supporter active_supporter sponsor custom"`
	Icon                string           `json:"icon"`
	Color               string           `json:"color" binding:"max=20"`
	IsManuallyAwardable *bool            `json:"isManuallyAwardable,omitempty"`
}

func (d CreateBadgeDTO) ToModel() models.Badge {
	awardable := true
	if d.IsManuallyAwardable != nil {
		awardable = *d.IsManuallyAwardable
	}
	return models.Badge{
		Name:                d.Name,
		Description:         d.Description,
		Type:                d.Type,
		Icon:                d.Icon,
		Color:               d.Color,
		IsManuallyAwardable: awardable,
	}
}

type UpdateBadgeDTO struct {
	Name                *string           `json:"name,omitempty" binding:"omitempty,max=100"`
	Description         *string           `json:"description,omitempty"`
	Type                *models.BadgeType `json:"type,omitempty" binding:"omitempty,oneof=supporter active_supporter sponsor custom"`
	Icon                *string           `json:"icon,omitempty"`
	Color               *string           `json:"color,omitempty" binding:"omitempty,max=20"`
	IsManuallyAwardable *bool             `json:"isManuallyAwardable,omitempty"`
}

func (d UpdateBadgeDTO) ApplyTo(m *models.Badge) {
	setIf(&m.Name, d.Name)
	setIf(&m.Description, d.Description)
	setIf(&m.Type, d.Type)
	setIf(&m.Icon, d.Icon)
	setIf(&m.Color, d.Color)
	setIf(&m.IsManuallyAwardable, d.IsManuallyAwardable)
}

type AwardBadgeDTO struct {
	BadgeID   int64   `json:"badgeId" binding:"required,min=1"`
	Reason    *string `json:"reason,omitempty"`
	ExpiresAt *string `json:"expiresAt,omitempty" binding:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setPtrIf[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}
