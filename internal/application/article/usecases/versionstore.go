package usecases

import (
	"context"
	"errors"
	"fmt"

	"redsys/internal/application/common"
	"redsys/internal/domain/article"
	"redsys/internal/domain/workflow"
	"redsys/internal/shared/db"
	apperrors "redsys/internal/shared/errors"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
)

// VersionStore keeps the append-only version history of articles. Writes
// for one article are serialized by the article lock, the latest-row lock
// and the unique (article, number) index.
type VersionStore struct {
	versionRepo article.VersionRepository
	authorizer  workflow.Authorizer
	locker      lock.Locker
	txMgr       db.Transactor
	logger      logger.Interface
}

func NewVersionStore(
	versionRepo article.VersionRepository,
	authorizer workflow.Authorizer,
	locker lock.Locker,
	txMgr db.Transactor,
	logger logger.Interface,
) *VersionStore {
	return &VersionStore{
		versionRepo: versionRepo,
		authorizer:  authorizer,
		locker:      locker,
		txMgr:       txMgr,
		logger:      logger,
	}
}

// CreateInitialVersion stores version 1 for a freshly created article.
func (s *VersionStore) CreateInitialVersion(
	ctx context.Context,
	a *article.Article,
	content string,
	actor workflow.Actor,
) (*article.ArticleVersion, error) {
	v, err := article.NewArticleVersion(a.ID(), 1, content, actor.ID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	err = s.withArticleLock(ctx, a.ID(), func(txCtx context.Context) error {
		return s.versionRepo.Create(txCtx, v)
	})
	if err != nil {
		return nil, s.mapWriteError(a.ID(), err)
	}

	s.logger.Infow("initial article version created", "article_id", a.ID(), "version_number", v.Number())
	return v, nil
}

// CreateIfChanged appends content as latest+1 unless it equals the latest
// version byte for byte, in which case the latest version is returned and
// nothing is written. The bool reports whether a version was created.
func (s *VersionStore) CreateIfChanged(
	ctx context.Context,
	a *article.Article,
	content string,
	actor workflow.Actor,
) (*article.ArticleVersion, bool, error) {
	var (
		result  *article.ArticleVersion
		created bool
	)

	err := s.withArticleLock(ctx, a.ID(), func(txCtx context.Context) error {
		latest, err := s.versionRepo.GetLatestForUpdate(txCtx, a.ID())
		if err != nil {
			return err
		}

		if latest.HasContent(content) {
			result = latest
			return nil
		}

		next, err := latest.Next(content, actor.ID)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		if err := s.versionRepo.Create(txCtx, next); err != nil {
			return err
		}

		result, created = next, true
		return nil
	})
	if err != nil {
		return nil, false, s.mapWriteError(a.ID(), err)
	}

	if created {
		s.logger.Infow("article version created", "article_id", a.ID(), "version_number", result.Number(), "created_by", actor.ID)
	}
	return result, created, nil
}

// GetVersion returns one version of a, subject to the read gate.
func (s *VersionStore) GetVersion(
	ctx context.Context,
	a *article.Article,
	number int,
	actor workflow.Actor,
) (*article.ArticleVersion, error) {
	if err := s.checkRead(a, actor); err != nil {
		return nil, err
	}

	v, err := s.versionRepo.GetByNumber(ctx, a.ID(), number)
	if err != nil {
		if errors.Is(err, article.ErrArticleVersionNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("version %d of article %d not found", number, a.ID()))
		}
		s.logger.Errorw("failed to get article version", "article_id", a.ID(), "version_number", number, "error", err)
		return nil, apperrors.NewInternalError("failed to get article version")
	}
	return v, nil
}

// ListVersions pages through a's history newest first, without content.
func (s *VersionStore) ListVersions(
	ctx context.Context,
	a *article.Article,
	filter article.VersionFilter,
	actor workflow.Actor,
) ([]*article.ArticleVersion, int64, error) {
	if err := s.checkRead(a, actor); err != nil {
		return nil, 0, err
	}

	versions, total, err := s.versionRepo.ListByArticle(ctx, a.ID(), filter)
	if err != nil {
		s.logger.Errorw("failed to list article versions", "article_id", a.ID(), "error", err)
		return nil, 0, apperrors.NewInternalError("failed to list article versions")
	}
	return versions, total, nil
}

func (s *VersionStore) checkRead(a *article.Article, actor workflow.Actor) error {
	scope, err := s.authorizer.VersionReadScope(actor.Role)
	if err != nil {
		s.logger.Errorw("version read check failed", "article_id", a.ID(), "role", actor.Role, "error", err)
		return apperrors.NewInternalError("failed to check permissions")
	}

	switch scope {
	case workflow.ReadAll:
		return nil
	case workflow.ReadOwn:
		if a.IsEditedBy(actor.ID) {
			return nil
		}
	}

	s.logger.Warnw("article version read denied", "article_id", a.ID(), "user_id", actor.ID, "role", actor.Role)
	return apperrors.NewForbiddenError("not allowed to read versions of this article")
}

func (s *VersionStore) withArticleLock(ctx context.Context, articleID uint, fn func(ctx context.Context) error) error {
	key := lock.ArticleKey(articleID)
	lockedCtx, release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		return common.LockError(err, key)
	}
	defer release()

	return s.txMgr.RunInTransaction(lockedCtx, fn)
}

func (s *VersionStore) mapWriteError(articleID uint, err error) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, article.ErrNoVersions):
		s.logger.Errorw("invariant violated: article has no versions", "article_id", articleID)
		return apperrors.NewInvariantViolationError("article has no versions", fmt.Sprintf("article_id=%d", articleID))
	case errors.Is(err, article.ErrVersionNumberTaken):
		s.logger.Warnw("concurrent version write detected", "article_id", articleID)
		return apperrors.NewConflictError("article version was written concurrently")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		s.logger.Errorw("failed to write article version", "article_id", articleID, "error", err)
		return apperrors.NewInternalError("failed to write article version")
	}
}
