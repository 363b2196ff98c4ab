package models

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&RefreshToken{},
		&Series{},
		&Volume{},
		&Arc{},
		&Chapter{},
		&Organization{},
		&Character{},
		&Tag{},
		&Gamble{},
		&Event{},
		&ChapterSpoiler{},
		&Guide{},
		&Annotation{},
		&Media{},
		&Badge{},
		&UserBadge{},
		&Notification{},
	}
}
