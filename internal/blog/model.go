package blog

import (
	"time"

	"github.com/google/uuid"
)

// OptionVersion is the key under which the data version marker is stored.
const OptionVersion = "version"

// EditorTypeTinyMCE is the editor assigned to articles written before the
// editor type field existed.
const EditorTypeTinyMCE = "tinyMCE"

// Option is a single key/value preference row. The version marker lives
// here; it is only ever rewritten inside a migration transaction.
type Option struct {
	ID    string `gorm:"primaryKey" json:"id"`
	Value string `gorm:"not null" json:"value"`
}

// TableName specifies the table name for options
func (Option) TableName() string {
	return "options"
}

// Article represents a published blog article
type Article struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `json:"content"`
	EditorType string    `json:"editor_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Comment represents a reader comment on an article
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ArticleID uuid.UUID `gorm:"type:uuid;index" json:"article_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User represents a registered author or administrator
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique" json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
