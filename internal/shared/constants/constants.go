package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"

	// Context keys
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"

	// Database table names
	TableUsers           = "users"
	TableArticles        = "articles"
	TableArticleVersions = "article_versions"
	TableTickets         = "tickets"
	TableTicketComments  = "ticket_comments"
)
