package upgrade

import (
	"context"
	"errors"

	"github.com/chroniclelabs/chronicle/backend/internal/blog"
	"github.com/google/uuid"
)

// errInjected is returned by fakes configured to fail.
var errInjected = errors.New("injected storage failure")

// memStore is an in-memory Store. Writes staged through a transaction
// only become visible after Commit; Rollback discards them, which is
// exactly what the rollback-invariant tests observe.
type memStore struct {
	version    string
	hasVersion bool
	versionErr error

	comments []blog.Comment
	articles []blog.Article
	users    []blog.User

	dropped bool
	dropErr error

	beginErr error

	// failCommentAt / failArticleAt make the Nth update call (0-based,
	// counted across transactions) fail with errInjected. -1 disables.
	failCommentAt  int
	commentUpdates int
	failArticleAt  int
	articleUpdates int

	beginCalls    int
	commitCalls   int
	rollbackCalls int
}

func newMemStore() *memStore {
	return &memStore{
		failCommentAt: -1,
		failArticleAt: -1,
	}
}

func (s *memStore) CurrentVersion(ctx context.Context) (string, bool, error) {
	if s.versionErr != nil {
		return "", false, s.versionErr
	}
	return s.version, s.hasVersion, nil
}

func (s *memStore) Comments(ctx context.Context) ([]blog.Comment, error) {
	return append([]blog.Comment(nil), s.comments...), nil
}

func (s *memStore) Articles(ctx context.Context) ([]blog.Article, error) {
	return append([]blog.Article(nil), s.articles...), nil
}

func (s *memStore) Users(ctx context.Context) ([]blog.User, error) {
	return append([]blog.User(nil), s.users...), nil
}

func (s *memStore) DropLegacyPreferences(ctx context.Context) error {
	if s.dropErr != nil {
		return s.dropErr
	}
	s.dropped = true
	return nil
}

func (s *memStore) Begin(ctx context.Context) (Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	s.beginCalls++
	return &memTx{store: s}, nil
}

type stagedComment struct {
	id uuid.UUID
	c  blog.Comment
}

type stagedArticle struct {
	id uuid.UUID
	a  blog.Article
}

type stagedUser struct {
	id uuid.UUID
	u  blog.User
}

type memTx struct {
	store    *memStore
	version  *string
	comments []stagedComment
	articles []stagedArticle
	users    []stagedUser
	done     bool
}

func (t *memTx) Commit() error {
	if t.done {
		return errors.New("transaction already finished")
	}
	t.done = true
	s := t.store
	s.commitCalls++

	if t.version != nil {
		s.version = *t.version
		s.hasVersion = true
	}
	for _, sc := range t.comments {
		for i := range s.comments {
			if s.comments[i].ID == sc.id {
				s.comments[i] = sc.c
			}
		}
	}
	for _, sa := range t.articles {
		for i := range s.articles {
			if s.articles[i].ID == sa.id {
				s.articles[i] = sa.a
			}
		}
	}
	for _, su := range t.users {
		for i := range s.users {
			if s.users[i].ID == su.id {
				s.users[i] = su.u
			}
		}
	}
	return nil
}

func (t *memTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.rollbackCalls++
	return nil
}

func (t *memTx) Versions() VersionWriter { return memVersionWriter{tx: t} }
func (t *memTx) Comments() CommentWriter { return memCommentWriter{tx: t} }
func (t *memTx) Articles() ArticleWriter { return memArticleWriter{tx: t} }
func (t *memTx) Users() UserWriter       { return memUserWriter{tx: t} }

type memVersionWriter struct{ tx *memTx }

func (w memVersionWriter) SetCurrent(value string) error {
	w.tx.version = &value
	return nil
}

type memCommentWriter struct{ tx *memTx }

func (w memCommentWriter) Update(id uuid.UUID, c blog.Comment) error {
	s := w.tx.store
	ordinal := s.commentUpdates
	s.commentUpdates++
	if s.failCommentAt >= 0 && ordinal == s.failCommentAt {
		return errInjected
	}
	w.tx.comments = append(w.tx.comments, stagedComment{id: id, c: c})
	return nil
}

type memArticleWriter struct{ tx *memTx }

func (w memArticleWriter) Update(id uuid.UUID, a blog.Article) error {
	s := w.tx.store
	ordinal := s.articleUpdates
	s.articleUpdates++
	if s.failArticleAt >= 0 && ordinal == s.failArticleAt {
		return errInjected
	}
	w.tx.articles = append(w.tx.articles, stagedArticle{id: id, a: a})
	return nil
}

type memUserWriter struct{ tx *memTx }

func (w memUserWriter) Update(id uuid.UUID, u blog.User) error {
	w.tx.users = append(w.tx.users, stagedUser{id: id, u: u})
	return nil
}

// sentMail captures one delivered message.
type sentMail struct {
	from    string
	to      string
	subject string
	body    string
}

// recordingSender is a MailSender that records deliveries and can be
// primed with errors for consecutive attempts.
type recordingSender struct {
	sends          []sentMail
	errs           []error
	failedAttempts int
}

func (r *recordingSender) Send(from, to, subject, htmlBody string) error {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			r.failedAttempts++
			return err
		}
	}
	r.sends = append(r.sends, sentMail{from: from, to: to, subject: subject, body: htmlBody})
	return nil
}
