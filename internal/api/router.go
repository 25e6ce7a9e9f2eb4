package api

import (
	"database/sql"
	"net/http"

	"github.com/foundit/foundit/internal/config"
	"github.com/foundit/foundit/internal/match"
	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/notify"
	"github.com/foundit/foundit/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, cfg config.Config) http.Handler {
	scorer := match.NewScorer(match.DefaultWeights())
	finder := match.NewFinder(scorer, &store.ItemSource{DB: db})

	sinks := notify.Multi{&store.AdminNotifier{DB: db}}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhook(cfg.WebhookURL, cfg.WebhookTimeout))
	}
	recorder := match.NewRecorder(&store.MatchWriter{DB: db, Dedup: cfg.DedupMatches}, sinks)

	threshold := cfg.MatchThreshold
	if threshold <= 0 {
		threshold = match.DefaultThreshold
	}

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{
		DB:           db,
		Finder:       finder,
		Recorder:     recorder,
		Threshold:    threshold,
		MatchTimeout: cfg.MatchTimeout,
	}
	matchesHandler := &MatchesHandler{DB: db}
	categoriesHandler := &CategoriesHandler{DB: db}
	claimsHandler := &ClaimsHandler{DB: db}
	notificationsHandler := &NotificationsHandler{DB: db}
	messagesHandler := &MessagesHandler{DB: db}
	analyticsHandler := &AnalyticsHandler{DB: db}
	siteInfoHandler := &SiteInfoHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret)
	optionalAuth := OptionalAuth(jwtSecret)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireStaff := RequireRole(model.RoleStaff)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public: login and site metadata.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/site", siteInfoHandler.Get)
	mux.Handle("PUT /api/site", authMW(requireAdmin(http.HandlerFunc(siteInfoHandler.Update))))

	// Authenticated account routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Items: reporting and browsing are public, moderation is staff+.
	mux.Handle("GET /api/items", optionalAuth(http.HandlerFunc(itemsHandler.List)))
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)
	mux.HandleFunc("PUT /api/items/{id}/image", itemsHandler.UploadImage)
	mux.Handle("PUT /api/items/{id}", authMW(requireStaff(http.HandlerFunc(itemsHandler.Update))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireStaff(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("PUT /api/items/{id}/approve", authMW(requireStaff(itemsHandler.SetApproval(true))))
	mux.Handle("PUT /api/items/{id}/unapprove", authMW(requireStaff(itemsHandler.SetApproval(false))))
	mux.Handle("GET /api/items/{id}/matches", authMW(requireStaff(http.HandlerFunc(itemsHandler.GetMatches))))
	mux.Handle("POST /api/items/{id}/rematch", authMW(requireStaff(http.HandlerFunc(itemsHandler.Rematch))))

	// Matches (staff+).
	mux.Handle("GET /api/matches", authMW(requireStaff(http.HandlerFunc(matchesHandler.List))))
	mux.Handle("PUT /api/matches/{id}/notified", authMW(requireStaff(http.HandlerFunc(matchesHandler.MarkNotified))))
	mux.Handle("DELETE /api/matches/{id}", authMW(requireStaff(http.HandlerFunc(matchesHandler.Delete))))

	// Categories: read public, write admin.
	mux.HandleFunc("GET /api/categories", categoriesHandler.List)
	mux.Handle("POST /api/categories", authMW(requireAdmin(http.HandlerFunc(categoriesHandler.Create))))
	mux.Handle("PUT /api/categories/{id}", authMW(requireAdmin(http.HandlerFunc(categoriesHandler.Update))))
	mux.Handle("DELETE /api/categories/{id}", authMW(requireAdmin(http.HandlerFunc(categoriesHandler.Delete))))

	// Claims: filing and status lookup public, decisions staff+.
	mux.HandleFunc("POST /api/claims", claimsHandler.Create)
	mux.HandleFunc("GET /api/claims/reference/{reference}", claimsHandler.GetByReference)
	mux.Handle("GET /api/claims", authMW(requireStaff(http.HandlerFunc(claimsHandler.List))))
	mux.Handle("PUT /api/claims/{id}/approve", authMW(requireStaff(http.HandlerFunc(claimsHandler.Approve))))
	mux.Handle("PUT /api/claims/{id}/reject", authMW(requireStaff(http.HandlerFunc(claimsHandler.Reject))))

	// Notifications (own account).
	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.List)))
	mux.Handle("PUT /api/notifications/read", authMW(http.HandlerFunc(notificationsHandler.MarkAllRead)))
	mux.Handle("PUT /api/notifications/{id}/read", authMW(http.HandlerFunc(notificationsHandler.MarkRead)))
	mux.Handle("DELETE /api/notifications/{id}", authMW(http.HandlerFunc(notificationsHandler.Delete)))

	// Messages: contact form public, inbox staff+.
	mux.HandleFunc("POST /api/messages", messagesHandler.Create)
	mux.Handle("GET /api/messages", authMW(requireStaff(http.HandlerFunc(messagesHandler.List))))
	mux.Handle("GET /api/messages/{id}", authMW(requireStaff(http.HandlerFunc(messagesHandler.Get))))
	mux.Handle("PUT /api/messages/{id}/read", authMW(requireStaff(http.HandlerFunc(messagesHandler.MarkRead))))
	mux.Handle("DELETE /api/messages/{id}", authMW(requireAdmin(http.HandlerFunc(messagesHandler.Delete))))

	// Analytics (staff+).
	mux.Handle("GET /api/analytics", authMW(requireStaff(http.HandlerFunc(analyticsHandler.List))))
	mux.Handle("POST /api/analytics/snapshot", authMW(requireStaff(http.HandlerFunc(analyticsHandler.Snapshot))))

	return mux
}
