package domain

import "time"

// Post types accepted from clients. "update" posts are changelog entries and
// usually carry a Version.
const (
	PostAdvice = "advice"
	PostBug    = "bug"
	PostChat   = "chat"
	PostUpdate = "update"
)

func ValidPostType(t string) bool {
	switch t {
	case PostAdvice, PostBug, PostChat, PostUpdate:
		return true
	}
	return false
}

type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Version   string    `json:"version,omitempty"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Reply     string    `json:"reply,omitempty"`
}
