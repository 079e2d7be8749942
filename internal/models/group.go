package models

// Group is a named category posts may optionally belong to.
// The slug is globally unique and used as the stable identifier in routes.
type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Slug        string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"size:500" json:"description"`
	Posts       []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM.
func (Group) TableName() string {
	return "groups"
}

func (g Group) String() string {
	return g.Title
}
