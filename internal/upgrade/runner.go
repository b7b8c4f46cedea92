package upgrade

import (
	"context"
	"strings"

	"github.com/chroniclelabs/chronicle/backend/internal/blog"
	"github.com/chroniclelabs/chronicle/backend/internal/logger"
)

// Runner executes the single supported migration step.
type Runner struct {
	store     Store
	transform ContentTransform
	logger    logger.Logger
}

// NewRunner creates a new migration runner.
func NewRunner(store Store, transform ContentTransform, logger logger.Logger) *Runner {
	return &Runner{
		store:     store,
		transform: transform,
		logger:    logger,
	}
}

// Perform runs the FromVersion -> ToVersion migration. The legacy
// preference storage is dropped first and has no rollback; after that
// point the version marker write and the full comment rewrite share one
// transaction, so a failure leaves the marker on the old version.
// Article and user backfills run after the marker transition commits,
// each through its own chunked transactions.
func (r *Runner) Perform(ctx context.Context) error {
	r.logger.LogInfo("Upgrading", map[string]interface{}{
		"from": FromVersion,
		"to":   ToVersion,
	})

	// Point of no return.
	if err := r.store.DropLegacyPreferences(ctx); err != nil {
		return NewMigrationError(FromVersion, ToVersion, err)
	}

	if err := r.rewriteComments(ctx); err != nil {
		structural := &StructuralInconsistencyError{From: FromVersion, To: ToVersion, Cause: err}
		r.logger.LogError(structural, "Migration rolled back after the legacy storage drop; installation is in a mixed state")
		return NewMigrationError(FromVersion, ToVersion, err)
	}

	if err := r.backfillArticleEditors(ctx); err != nil {
		return NewMigrationError(FromVersion, ToVersion, err)
	}
	if err := r.backfillUserAvatars(ctx); err != nil {
		return NewMigrationError(FromVersion, ToVersion, err)
	}

	r.logger.LogInfo("Upgraded successfully", map[string]interface{}{
		"from": FromVersion,
		"to":   ToVersion,
	})
	return nil
}

// rewriteComments updates the version marker and rewrites every comment
// inside one transaction. Comment volumes are small enough for a single
// transaction; bulk record sets go through RunChunked instead.
func (r *Runner) rewriteComments(ctx context.Context) (err error) {
	comments, err := r.store.Comments(ctx)
	if err != nil {
		return err
	}

	tx, err := r.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// The marker write is the first write in the transaction; it only
	// becomes visible together with the full rewrite.
	if err = tx.Versions().SetCurrent(ToVersion); err != nil {
		return err
	}

	for _, comment := range comments {
		comment.Name = r.transform.SanitizeStrict(comment.Name)
		comment.Content = r.rewriteContent(comment.Content)
		if err = tx.Comments().Update(comment.ID, comment); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	r.logger.LogInfo("Rewrote comments and updated version marker", map[string]interface{}{
		"comments": len(comments),
	})
	return nil
}

// rewriteContent runs one comment body through the migration pipeline:
// entity unescape, legacy line-break sentinel, Markdown render, relaxed
// sanitize. The order matters; sanitizing before rendering would strip
// the sentinel's replacement.
func (r *Runner) rewriteContent(content string) string {
	content = r.transform.UnescapeEntities(content)
	content = strings.ReplaceAll(content, legacyLineBreakToken, "<br/>")
	content = r.transform.RenderMarkdown(content)
	return r.transform.SanitizeRelaxed(content)
}

// backfillArticleEditors assigns the legacy editor to every article,
// committing in chunks.
func (r *Runner) backfillArticleEditors(ctx context.Context) error {
	articles, err := r.store.Articles(ctx)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		r.logger.LogDebug("No articles to backfill", nil)
		return nil
	}

	progress, err := RunChunked(ctx, r.store, articles, DefaultChunkSize, func(tx Tx, a blog.Article) error {
		a.EditorType = blog.EditorTypeTinyMCE
		return tx.Articles().Update(a.ID, a)
	})
	if err != nil {
		r.logger.LogErrorf(err, "Article editor backfill aborted after %d committed chunks", progress.ChunksCommitted)
		return err
	}

	r.logger.LogInfo("Backfilled article editor type", map[string]interface{}{
		"articles": progress.RecordsCommitted,
		"chunks":   progress.ChunksCommitted,
	})
	return nil
}

// backfillUserAvatars derives an avatar URL for every user from their
// email address, committing in chunks.
func (r *Runner) backfillUserAvatars(ctx context.Context) error {
	users, err := r.store.Users(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		r.logger.LogDebug("No users to backfill", nil)
		return nil
	}

	progress, err := RunChunked(ctx, r.store, users, DefaultChunkSize, func(tx Tx, u blog.User) error {
		u.AvatarURL = blog.GravatarURL(u.Email, blog.AvatarSize)
		return tx.Users().Update(u.ID, u)
	})
	if err != nil {
		r.logger.LogErrorf(err, "User avatar backfill aborted after %d committed chunks", progress.ChunksCommitted)
		return err
	}

	r.logger.LogInfo("Backfilled user avatars", map[string]interface{}{
		"users":  progress.RecordsCommitted,
		"chunks": progress.ChunksCommitted,
	})
	return nil
}
