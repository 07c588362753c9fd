package http

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	articleusecases "redsys/internal/application/article/usecases"
	ticketusecases "redsys/internal/application/ticket/usecases"
	workflowusecases "redsys/internal/application/workflow/usecases"
	"redsys/internal/domain/workflow"
	"redsys/internal/infrastructure/auth"
	"redsys/internal/infrastructure/cache"
	"redsys/internal/infrastructure/config"
	"redsys/internal/infrastructure/permission"
	"redsys/internal/infrastructure/repository"
	articlehandler "redsys/internal/interfaces/http/handlers/article"
	tickethandler "redsys/internal/interfaces/http/handlers/ticket"
	"redsys/internal/interfaces/http/middleware"
	"redsys/internal/shared/db"
	"redsys/internal/shared/lock"
	"redsys/internal/shared/logger"
	"redsys/internal/shared/services/markdown"
)

// Container wires repositories, the workflow core, use cases and handlers.
type Container struct {
	db    *gorm.DB
	cfg   *config.Config
	log   logger.Interface
	redis *redis.Client

	ticketHandler  *tickethandler.TicketHandler
	articleHandler *articlehandler.ArticleHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewContainer builds the dependency graph. It fails when the stored
// permission policies do not cover every transition or the lock backend is
// unreachable.
func NewContainer(database *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:  database,
		cfg: cfg,
		log: log,
	}

	authorizer, err := permission.NewEnforcer(database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load permission policies: %w", err)
	}
	stateMachine, err := workflow.NewStateMachine(authorizer, workflow.DefaultOwnershipRules())
	if err != nil {
		return nil, fmt.Errorf("failed to build ticket state machine: %w", err)
	}

	locker, err := c.newLocker()
	if err != nil {
		return nil, err
	}

	txMgr := db.NewTransactionManager(database)
	userRepo := repository.NewUserRepository(database, log)
	articleRepo := repository.NewArticleRepository(database)
	versionRepo := repository.NewArticleVersionRepository(database)
	ticketRepo := repository.NewTicketRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	md := markdown.NewService()

	versionStore := articleusecases.NewVersionStore(versionRepo, authorizer, locker, txMgr, log)

	c.articleHandler = articlehandler.NewArticleHandler(
		articleusecases.NewCreateArticleUseCase(articleRepo, versionStore, txMgr, log),
		articleusecases.NewUpdateArticleContentUseCase(articleRepo, versionStore, locker, txMgr, log),
		articleusecases.NewGetArticleUseCase(articleRepo, versionRepo, log),
		articleusecases.NewListArticlesUseCase(articleRepo, log),
		articleusecases.NewGetArticleVersionUseCase(articleRepo, versionStore, md, log),
		articleusecases.NewListArticleVersionsUseCase(articleRepo, versionStore, log),
		log,
	)

	c.ticketHandler = tickethandler.NewTicketHandler(
		ticketusecases.NewCreateTicketUseCase(ticketRepo, articleRepo, userRepo, log),
		ticketusecases.NewGetTicketUseCase(ticketRepo, log),
		ticketusecases.NewListTicketsUseCase(ticketRepo, log),
		ticketusecases.NewListTicketCommentsUseCase(ticketRepo, commentRepo, log),
		ticketusecases.NewAddTicketCommentUseCase(ticketRepo, commentRepo, locker, txMgr, log),
		ticketusecases.NewUpdateTicketCommentUseCase(ticketRepo, commentRepo, log),
		ticketusecases.NewDeleteTicketCommentUseCase(ticketRepo, commentRepo, log),
		workflowusecases.NewTransitionTicketUseCase(
			ticketRepo, commentRepo, articleRepo, versionRepo, versionStore,
			stateMachine, locker, txMgr, log,
		),
		log,
	)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, userRepo, log)

	return c, nil
}

// newLocker picks the in-process locker for a single instance and the Redis
// locker when several instances share the database.
func (c *Container) newLocker() (lock.Locker, error) {
	wf := c.cfg.Workflow
	if wf.LockBackend != "redis" {
		c.log.Infow("using local lock backend", "wait", wf.LockWait())
		return lock.NewLocalLocker(wf.LockWait()), nil
	}

	c.redis = redis.NewClient(&redis.Options{
		Addr:     c.cfg.Redis.GetAddr(),
		Password: c.cfg.Redis.Password,
		DB:       c.cfg.Redis.DB,
	})
	if err := c.redis.Ping(context.Background()).Err(); err != nil {
		_ = c.redis.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", c.cfg.Redis.GetAddr(), err)
	}

	c.log.Infow("using redis lock backend", "addr", c.cfg.Redis.GetAddr(), "ttl", wf.LockTTL(), "wait", wf.LockWait())
	return cache.NewRedisLocker(c.redis, wf.LockTTL(), wf.LockWait(), c.log), nil
}

// Shutdown releases connections owned by the container.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
