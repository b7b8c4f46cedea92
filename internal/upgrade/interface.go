package upgrade

import (
	"context"

	"github.com/chroniclelabs/chronicle/backend/internal/blog"
	"github.com/google/uuid"
)

// VersionWriter updates the persisted version marker inside a transaction.
type VersionWriter interface {
	SetCurrent(value string) error
}

// CommentWriter rewrites a single comment inside a transaction.
type CommentWriter interface {
	Update(id uuid.UUID, c blog.Comment) error
}

// ArticleWriter rewrites a single article inside a transaction.
type ArticleWriter interface {
	Update(id uuid.UUID, a blog.Article) error
}

// UserWriter rewrites a single user inside a transaction.
type UserWriter interface {
	Update(id uuid.UUID, u blog.User) error
}

// Tx is one storage transaction. All writes staged through its writers
// become durable on Commit and are discarded on Rollback.
type Tx interface {
	Commit() error
	Rollback() error
	Versions() VersionWriter
	Comments() CommentWriter
	Articles() ArticleWriter
	Users() UserWriter
}

// TxBeginner opens transactions. The chunked executor holds at most one
// open transaction at a time.
type TxBeginner interface {
	Begin(ctx context.Context) (Tx, error)
}

// Store is the durable storage surface the engine runs against. Reads
// happen outside transactions; the engine assumes a single upgrade
// attempt runs at a time.
type Store interface {
	TxBeginner

	// CurrentVersion returns the persisted version marker. The second
	// return is false when no installation exists yet.
	CurrentVersion(ctx context.Context) (string, bool, error)

	Comments(ctx context.Context) ([]blog.Comment, error)
	Articles(ctx context.Context) ([]blog.Article, error)
	Users(ctx context.Context) ([]blog.User, error)

	// DropLegacyPreferences removes the obsolete preference storage.
	// The drop is not transactional and cannot be rolled back.
	DropLegacyPreferences(ctx context.Context) error
}

// ContentTransform sanitizes and renders migrated field values.
type ContentTransform interface {
	// SanitizeStrict strips all markup, keeping only text.
	SanitizeStrict(text string) string
	// SanitizeRelaxed keeps common formatting tags and strips
	// scripts, styles and event handlers.
	SanitizeRelaxed(markup string) string
	// UnescapeEntities resolves legacy HTML entities to their characters.
	UnescapeEntities(text string) string
	// RenderMarkdown renders Markdown source to HTML.
	RenderMarkdown(text string) string
}

// MailSender delivers a single HTML mail.
type MailSender interface {
	Send(from, to, subject, htmlBody string) error
}
