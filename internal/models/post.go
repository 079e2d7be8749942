package models

import "time"

// previewLen is how many runes of text the String form of a Post or
// Comment keeps for display in logs and admin listings.
const previewLen = 15

// Post is a user-authored text entry, optionally grouped and illustrated.
//
// Referential integrity rules:
//   - deleting the author is blocked while their posts exist (RESTRICT);
//   - deleting the group nulls the post's group reference (SET NULL).
//
// CreatedAt is set once on insert and never updated; listings order by it
// newest-first.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:2000;not null" json:"text"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"author"`
	GroupID   *uint     `gorm:"index" json:"group_id"`
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	Image     string    `gorm:"size:255" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"index;<-:create" json:"created_at"`
}

func (p Post) String() string {
	return truncate(p.Text, previewLen)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
