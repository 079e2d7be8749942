package models

import "time"

// Comment is a user-authored reply attached to exactly one post.
// Deleting the parent post or the comment's author cascades here.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

func (c Comment) String() string {
	return truncate(c.Text, previewLen)
}
