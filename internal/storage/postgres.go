// Package storage provides the gorm-backed implementation of the upgrade
// engine's storage interfaces.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/chroniclelabs/chronicle/backend/internal/blog"
	"github.com/chroniclelabs/chronicle/backend/internal/logger"
	"github.com/chroniclelabs/chronicle/backend/internal/upgrade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// legacyPreferenceTable is the pre-1.2.1 preference storage dropped by
// the migration step.
const legacyPreferenceTable = "preferences"

// Store implements upgrade.Store on a gorm connection.
type Store struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewStore creates a new store.
func NewStore(db *gorm.DB, logger logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger,
	}
}

// CurrentVersion reads the persisted version marker.
func (s *Store) CurrentVersion(ctx context.Context) (string, bool, error) {
	var opt blog.Option
	err := s.db.WithContext(ctx).First(&opt, "id = ?", blog.OptionVersion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read version marker: %w", err)
	}
	return opt.Value, true, nil
}

// Comments returns every comment, oldest first.
func (s *Store) Comments(ctx context.Context) ([]blog.Comment, error) {
	var comments []blog.Comment
	if err := s.db.WithContext(ctx).Order("created_at").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// Articles returns every article, oldest first.
func (s *Store) Articles(ctx context.Context) ([]blog.Article, error) {
	var articles []blog.Article
	if err := s.db.WithContext(ctx).Order("created_at").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch articles: %w", err)
	}
	return articles, nil
}

// Users returns every user, oldest first.
func (s *Store) Users(ctx context.Context) ([]blog.User, error) {
	var users []blog.User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// DropLegacyPreferences drops the obsolete preference table. DDL is not
// transactional here; callers treat this as a point of no return.
func (s *Store) DropLegacyPreferences(ctx context.Context) error {
	migrator := s.db.WithContext(ctx).Migrator()
	if !migrator.HasTable(legacyPreferenceTable) {
		s.logger.LogDebug("Legacy preference table already absent", nil)
		return nil
	}
	if err := migrator.DropTable(legacyPreferenceTable); err != nil {
		return fmt.Errorf("failed to drop legacy preference table: %w", err)
	}
	s.logger.LogInfo("Dropped legacy preference table", nil)
	return nil
}

// Begin opens a storage transaction.
func (s *Store) Begin(ctx context.Context) (upgrade.Tx, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	return &storeTx{tx: tx}, nil
}

// storeTx implements upgrade.Tx on a gorm transaction handle.
type storeTx struct {
	tx *gorm.DB
}

func (t *storeTx) Commit() error {
	return t.tx.Commit().Error
}

func (t *storeTx) Rollback() error {
	return t.tx.Rollback().Error
}

func (t *storeTx) Versions() upgrade.VersionWriter {
	return versionWriter{tx: t.tx}
}

func (t *storeTx) Comments() upgrade.CommentWriter {
	return commentWriter{tx: t.tx}
}

func (t *storeTx) Articles() upgrade.ArticleWriter {
	return articleWriter{tx: t.tx}
}

func (t *storeTx) Users() upgrade.UserWriter {
	return userWriter{tx: t.tx}
}

type versionWriter struct {
	tx *gorm.DB
}

func (w versionWriter) SetCurrent(value string) error {
	result := w.tx.Model(&blog.Option{}).
		Where("id = ?", blog.OptionVersion).
		Update("value", value)
	if result.Error != nil {
		return fmt.Errorf("failed to update version marker: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("version marker row %q not found", blog.OptionVersion)
	}
	return nil
}

type commentWriter struct {
	tx *gorm.DB
}

func (w commentWriter) Update(id uuid.UUID, c blog.Comment) error {
	err := w.tx.Model(&blog.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":    c.Name,
			"content": c.Content,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update comment %s: %w", id, err)
	}
	return nil
}

type articleWriter struct {
	tx *gorm.DB
}

func (w articleWriter) Update(id uuid.UUID, a blog.Article) error {
	err := w.tx.Model(&blog.Article{}).
		Where("id = ?", id).
		Update("editor_type", a.EditorType).Error
	if err != nil {
		return fmt.Errorf("failed to update article %s: %w", id, err)
	}
	return nil
}

type userWriter struct {
	tx *gorm.DB
}

func (w userWriter) Update(id uuid.UUID, u blog.User) error {
	err := w.tx.Model(&blog.User{}).
		Where("id = ?", id).
		Update("avatar_url", u.AvatarURL).Error
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return nil
}
