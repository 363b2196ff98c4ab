package models

// ContentStatus is the moderation state of community-submitted content.
type ContentStatus string

const (
	StatusPending  ContentStatus = "pending"
	StatusApproved ContentStatus = "approved"
	StatusRejected ContentStatus = "rejected"
)

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Role is the account role used by route guards.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may approve or reject submissions
// and edit canonical content.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// EventType classifies a story beat on the timeline.
type EventType string

const (
	EventGamble     EventType = "gamble"
	EventDecision   EventType = "decision"
	EventReveal     EventType = "reveal"
	EventShift      EventType = "shift"
	EventResolution EventType = "resolution"
)

func (t EventType) Valid() bool {
	switch t {
	case EventGamble, EventDecision, EventReveal, EventShift, EventResolution:
		return true
	}
	return false
}

// AnnotationOwnerType names the entity an annotation is attached to.
type AnnotationOwnerType string

const (
	AnnotationOwnerCharacter AnnotationOwnerType = "character"
	AnnotationOwnerGamble    AnnotationOwnerType = "gamble"
	AnnotationOwnerChapter   AnnotationOwnerType = "chapter"
	AnnotationOwnerArc       AnnotationOwnerType = "arc"
)

func (t AnnotationOwnerType) Valid() bool {
	switch t {
	case AnnotationOwnerCharacter, AnnotationOwnerGamble, AnnotationOwnerChapter, AnnotationOwnerArc:
		return true
	}
	return false
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

func (t MediaType) Valid() bool {
	switch t {
	case MediaImage, MediaVideo, MediaAudio:
		return true
	}
	return false
}

// MediaOwnerType names the entity a media item illustrates.
type MediaOwnerType string

const (
	MediaOwnerCharacter    MediaOwnerType = "character"
	MediaOwnerArc          MediaOwnerType = "arc"
	MediaOwnerEvent        MediaOwnerType = "event"
	MediaOwnerGamble       MediaOwnerType = "gamble"
	MediaOwnerOrganization MediaOwnerType = "organization"
	MediaOwnerVolume       MediaOwnerType = "volume"
)

func (t MediaOwnerType) Valid() bool {
	switch t {
	case MediaOwnerCharacter, MediaOwnerArc, MediaOwnerEvent, MediaOwnerGamble, MediaOwnerOrganization, MediaOwnerVolume:
		return true
	}
	return false
}

type MediaPurpose string

const (
	MediaPurposeGallery       MediaPurpose = "gallery"
	MediaPurposeEntityDisplay MediaPurpose = "entity_display"
)

func (p MediaPurpose) Valid() bool {
	return p == MediaPurposeGallery || p == MediaPurposeEntityDisplay
}

type BadgeType string

const (
	BadgeSupporter       BadgeType = "supporter"
	BadgeActiveSupporter BadgeType = "active_supporter"
	BadgeSponsor         BadgeType = "sponsor"
	BadgeCustom          BadgeType = "custom"
)

func (t BadgeType) Valid() bool {
	switch t {
	case BadgeSupporter, BadgeActiveSupporter, BadgeSponsor, BadgeCustom:
		return true
	}
	return false
}

type SpoilerLevel string

const (
	SpoilerMinor    SpoilerLevel = "minor"
	SpoilerMajor    SpoilerLevel = "major"
	SpoilerCritical SpoilerLevel = "critical"
)

func (l SpoilerLevel) Valid() bool {
	return l == SpoilerMinor || l == SpoilerMajor || l == SpoilerCritical
}

type SpoilerCategory string

const (
	SpoilerCategoryPlot      SpoilerCategory = "plot"
	SpoilerCategoryCharacter SpoilerCategory = "character"
	SpoilerCategoryGamble    SpoilerCategory = "gamble"
	SpoilerCategoryReveal    SpoilerCategory = "reveal"
	SpoilerCategoryOther     SpoilerCategory = "other"
)

func (c SpoilerCategory) Valid() bool {
	switch c {
	case SpoilerCategoryPlot, SpoilerCategoryCharacter, SpoilerCategoryGamble, SpoilerCategoryReveal, SpoilerCategoryOther:
		return true
	}
	return false
}
