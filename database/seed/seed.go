// Package seed imports a JSON content bundle (series, volumes, arcs, chapters,
// organizations, characters, tags, gambles, events and badges) into the
// database. Rows are matched by natural key so applying the same bundle twice
// leaves the database unchanged.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"mangafandb/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

//go:embed bundle.json
var defaultBundle []byte

// ErrUnknownRef is returned when a bundle entry names a row that neither the
// bundle nor the database contains.
var ErrUnknownRef = errors.New("unknown reference")

type Bundle struct {
	Series        []SeriesEntry       `json:"series"`
	Volumes       []VolumeEntry       `json:"volumes"`
	Arcs          []ArcEntry          `json:"arcs"`
	Chapters      []ChapterEntry      `json:"chapters"`
	Organizations []OrganizationEntry `json:"organizations"`
	Characters    []CharacterEntry    `json:"characters"`
	Tags          []TagEntry          `json:"tags"`
	Gambles       []GambleEntry       `json:"gambles"`
	Events        []EventEntry        `json:"events"`
	Badges        []BadgeEntry        `json:"badges"`
}

type SeriesEntry struct {
	Name        string  `json:"name"`
	Order       int     `json:"order"`
	Description *string `json:"description,omitempty"`
}

type VolumeEntry struct {
	Number       int     `json:"number"`
	Title        *string `json:"title,omitempty"`
	StartChapter int     `json:"startChapter"`
	EndChapter   int     `json:"endChapter"`
	Description  *string `json:"description,omitempty"`
}

// ArcEntry references its series and parent arc by name. A parent must be
// listed before its children.
type ArcEntry struct {
	Name         string  `json:"name"`
	Order        int     `json:"order"`
	StartChapter int     `json:"startChapter"`
	EndChapter   int     `json:"endChapter"`
	Description  *string `json:"description,omitempty"`
	Series       string  `json:"series,omitempty"`
	Parent       string  `json:"parent,omitempty"`
}

type ChapterEntry struct {
	Number  int     `json:"number"`
	Title   *string `json:"title,omitempty"`
	Summary *string `json:"summary,omitempty"`
	Volume  int     `json:"volume,omitempty"`
}

type OrganizationEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CharacterEntry struct {
	Name                   string   `json:"name"`
	AlternateNames         []string `json:"alternateNames,omitempty"`
	Description            *string  `json:"description,omitempty"`
	FirstAppearanceChapter *int     `json:"firstAppearanceChapter,omitempty"`
	Occupation             *string  `json:"occupation,omitempty"`
	Organizations          []string `json:"organizations,omitempty"`
}

type TagEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type GambleEntry struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	Rules        string   `json:"rules"`
	WinCondition *string  `json:"winCondition,omitempty"`
	StartChapter int      `json:"startChapter"`
	EndChapter   *int     `json:"endChapter,omitempty"`
	Arc          string   `json:"arc,omitempty"`
	Participants []string `json:"participants,omitempty"`
}

// EventEntry is keyed by title and chapter number.
type EventEntry struct {
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Type           models.EventType `json:"type"`
	ChapterNumber  int              `json:"chapterNumber"`
	SpoilerChapter *int             `json:"spoilerChapter,omitempty"`
	Arc            string           `json:"arc,omitempty"`
	Gamble         string           `json:"gamble,omitempty"`
	Characters     []string         `json:"characters,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
}

type BadgeEntry struct {
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Type              models.BadgeType `json:"type"`
	Icon              string           `json:"icon"`
	Color             string           `json:"color"`
	ManuallyAwardable bool             `json:"manuallyAwardable"`
}

// Report counts the bundle rows applied per kind.
type Report map[string]int

func (r Report) Total() int {
	n := 0
	for _, v := range r {
		n += v
	}
	return n
}

// Default returns the bundle compiled into the binary.
func Default() (*Bundle, error) {
	return parse(defaultBundle)
}

// Load reads a bundle from a JSON file.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return &b, nil
}

// Apply upserts every entry of b inside a single transaction. Any failure
// rolls the whole bundle back.
func Apply(ctx context.Context, db *gorm.DB, b *Bundle) (Report, error) {
	report := Report{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		phases := []struct {
			name string
			run  func(*gorm.DB, *Bundle) (int, error)
		}{
			{"series", applySeries},
			{"volumes", applyVolumes},
			{"arcs", applyArcs},
			{"chapters", applyChapters},
			{"organizations", applyOrganizations},
			{"characters", applyCharacters},
			{"tags", applyTags},
			{"gambles", applyGambles},
			{"events", applyEvents},
			{"badges", applyBadges},
		}
		for _, p := range phases {
			n, err := p.run(tx, b)
			if err != nil {
				return fmt.Errorf("%s: %w", p.name, err)
			}
			report[p.name] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// upsert finds the row matching key or creates it, then writes attrs.
func upsert[T any](tx *gorm.DB, key, attrs T) (*T, error) {
	var row T
	if err := tx.Where(&key).Assign(attrs).FirstOrCreate(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func lookupID[T any](tx *gorm.DB, column string, value any) (int64, error) {
	var ids []int64
	if err := tx.Model(new(T)).Where(column+" = ?", value).Limit(1).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s %v", ErrUnknownRef, column, value)
	}
	return ids[0], nil
}

func optionalID[T any](tx *gorm.DB, column, name string) (*int64, error) {
	if name == "" {
		return nil, nil
	}
	id, err := lookupID[T](tx, column, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// findByNames loads the rows named in names and fails if any is missing.
func findByNames[T any](tx *gorm.DB, names []string) ([]T, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var rows []T
	if err := tx.Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) != len(dedupe(names)) {
		return nil, fmt.Errorf("%w: one of %s", ErrUnknownRef, strings.Join(names, ", "))
	}
	return rows, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0:0]
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func link[A any](tx *gorm.DB, owner any, name string, items []A) error {
	assoc := tx.Model(owner).Omit(name + ".*").Association(name)
	if len(items) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(items)
}

func requireName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s without a name", kind)
	}
	return nil
}

func applySeries(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Series {
		if err := requireName("series", e.Name); err != nil {
			return 0, err
		}
		if _, err := upsert(tx, models.Series{Name: e.Name}, models.Series{Order: e.Order, Description: e.Description}); err != nil {
			return 0, err
		}
	}
	return len(b.Series), nil
}

func applyVolumes(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Volumes {
		if e.Number < 1 || e.StartChapter < 1 || e.EndChapter < e.StartChapter {
			return 0, fmt.Errorf("volume %d has an invalid chapter range", e.Number)
		}
		attrs := models.Volume{Title: e.Title, StartChapter: e.StartChapter, EndChapter: e.EndChapter, Description: e.Description}
		if _, err := upsert(tx, models.Volume{Number: e.Number}, attrs); err != nil {
			return 0, err
		}
	}
	return len(b.Volumes), nil
}

func applyArcs(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Arcs {
		if err := requireName("arc", e.Name); err != nil {
			return 0, err
		}
		seriesID, err := optionalID[models.Series](tx, "name", e.Series)
		if err != nil {
			return 0, err
		}
		parentID, err := optionalID[models.Arc](tx, "name", e.Parent)
		if err != nil {
			return 0, err
		}
		attrs := models.Arc{
			Order:        e.Order,
			StartChapter: e.StartChapter,
			EndChapter:   e.EndChapter,
			Description:  e.Description,
			SeriesID:     seriesID,
			ParentID:     parentID,
		}
		if _, err := upsert(tx, models.Arc{Name: e.Name}, attrs); err != nil {
			return 0, err
		}
	}
	return len(b.Arcs), nil
}

func applyChapters(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Chapters {
		if e.Number < 1 {
			return 0, fmt.Errorf("chapter number %d", e.Number)
		}
		attrs := models.Chapter{Title: e.Title, Summary: e.Summary}
		if e.Volume > 0 {
			id, err := lookupID[models.Volume](tx, "number", e.Volume)
			if err != nil {
				return 0, err
			}
			attrs.VolumeID = &id
		}
		if _, err := upsert(tx, models.Chapter{Number: e.Number}, attrs); err != nil {
			return 0, err
		}
	}
	return len(b.Chapters), nil
}

func applyOrganizations(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Organizations {
		if err := requireName("organization", e.Name); err != nil {
			return 0, err
		}
		if _, err := upsert(tx, models.Organization{Name: e.Name}, models.Organization{Description: e.Description}); err != nil {
			return 0, err
		}
	}
	return len(b.Organizations), nil
}

func applyCharacters(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Characters {
		if err := requireName("character", e.Name); err != nil {
			return 0, err
		}
		attrs := models.Character{
			AlternateNames:         e.AlternateNames,
			Description:            e.Description,
			FirstAppearanceChapter: e.FirstAppearanceChapter,
			Occupation:             e.Occupation,
		}
		c, err := upsert(tx, models.Character{Name: e.Name}, attrs)
		if err != nil {
			return 0, err
		}
		orgs, err := findByNames[models.Organization](tx, e.Organizations)
		if err != nil {
			return 0, err
		}
		if err := link(tx, c, "Organizations", orgs); err != nil {
			return 0, err
		}
	}
	return len(b.Characters), nil
}

func applyTags(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Tags {
		if err := requireName("tag", e.Name); err != nil {
			return 0, err
		}
		if _, err := upsert(tx, models.Tag{Name: e.Name}, models.Tag{Description: e.Description}); err != nil {
			return 0, err
		}
	}
	return len(b.Tags), nil
}

func applyGambles(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Gambles {
		if err := requireName("gamble", e.Name); err != nil {
			return 0, err
		}
		arcID, err := optionalID[models.Arc](tx, "name", e.Arc)
		if err != nil {
			return 0, err
		}
		attrs := models.Gamble{
			Description:  e.Description,
			Rules:        e.Rules,
			WinCondition: e.WinCondition,
			StartChapter: e.StartChapter,
			EndChapter:   e.EndChapter,
			ArcID:        arcID,
		}
		g, err := upsert(tx, models.Gamble{Name: e.Name}, attrs)
		if err != nil {
			return 0, err
		}
		participants, err := findByNames[models.Character](tx, e.Participants)
		if err != nil {
			return 0, err
		}
		if err := link(tx, g, "Participants", participants); err != nil {
			return 0, err
		}
	}
	return len(b.Gambles), nil
}

func applyEvents(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Events {
		if strings.TrimSpace(e.Title) == "" || e.ChapterNumber < 1 {
			return 0, fmt.Errorf("event %q needs a title and a chapter", e.Title)
		}
		if !e.Type.Valid() {
			return 0, fmt.Errorf("event %q: unknown type %q", e.Title, e.Type)
		}
		arcID, err := optionalID[models.Arc](tx, "name", e.Arc)
		if err != nil {
			return 0, err
		}
		gambleID, err := optionalID[models.Gamble](tx, "name", e.Gamble)
		if err != nil {
			return 0, err
		}
		attrs := models.Event{
			Description:    e.Description,
			Type:           e.Type,
			SpoilerChapter: e.SpoilerChapter,
			ArcID:          arcID,
			GambleID:       gambleID,
			Status:         models.StatusApproved,
		}
		ev, err := upsert(tx, models.Event{Title: e.Title, ChapterNumber: e.ChapterNumber}, attrs)
		if err != nil {
			return 0, err
		}
		characters, err := findByNames[models.Character](tx, e.Characters)
		if err != nil {
			return 0, err
		}
		if err := link(tx, ev, "Characters", characters); err != nil {
			return 0, err
		}
		tags, err := findByNames[models.Tag](tx, e.Tags)
		if err != nil {
			return 0, err
		}
		if err := link(tx, ev, "Tags", tags); err != nil {
			return 0, err
		}
	}
	return len(b.Events), nil
}

func applyBadges(tx *gorm.DB, b *Bundle) (int, error) {
	for _, e := range b.Badges {
		if err := requireName("badge", e.Name); err != nil {
			return 0, err
		}
		if !e.Type.Valid() {
			return 0, fmt.Errorf("badge %q: unknown type %q", e.Name, e.Type)
		}
		var badge models.Badge
		err := tx.Where(&models.Badge{Name: e.Name}).
			Assign(map[string]any{
				"description":           e.Description,
				"type":                  e.Type,
				"icon":                  e.Icon,
				"color":                 e.Color,
				"is_manually_awardable": e.ManuallyAwardable,
			}).
			FirstOrCreate(&badge).Error
		if err != nil {
			return 0, err
		}
	}
	return len(b.Badges), nil
}
