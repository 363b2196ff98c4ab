package service

import (
	"mangafandb/internal/microservices/http-api/models"
	"mangafandb/internal/microservices/http-api/repository"
	"mangafandb/internal/spoiler"
)

// Reader is who a response is rendered for: the account, if any, and the
// reading progress spoilers are measured against.
type Reader struct {
	UserID string
	Role   models.Role
	Viewer spoiler.Viewer
}

// Anonymous reads with progress 0 and sees approved content only.
var Anonymous = Reader{Viewer: spoiler.Anonymous}

func (r Reader) Authenticated() bool {
	return r.UserID != ""
}

func (r Reader) IsModerator() bool {
	return r.Role.CanModerate()
}

func (r Reader) visibility() repository.Visibility {
	return repository.Visibility{ViewerID: r.UserID, IsModerator: r.IsModerator()}
}

// canSee reports whether the reader may open a moderated item.
func (r Reader) canSee(status models.ContentStatus, authorID string) bool {
	return status == models.StatusApproved || r.IsModerator() || (r.Authenticated() && authorID == r.UserID)
}
