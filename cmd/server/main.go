package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/api"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/config"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/handlers"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/orders"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/samples"
	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/session"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Platform API client
	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}
	sessionManager := session.NewManager(sessionStore, cfg.AdminEmail)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		API:       client,
		Sessions:  sessionManager,
		Templates: templates,
		AssetBase: cfg.AssetBaseURL,
	}
	orderHandler := &handlers.OrderHandler{
		Orders:    orders.NewRegistry(client, cfg.AssetBaseURL),
		Sessions:  sessionManager,
		Templates: templates,
	}
	sampleHandler := &handlers.SampleHandler{
		VM:        samples.NewViewModel(client),
		Sessions:  sessionManager,
		Templates: templates,
	}
	authHandler := &handlers.AuthHandler{
		API:        client,
		Sessions:   sessionManager,
		Templates:  templates,
		AdminEmail: cfg.AdminEmail,
	}
	adminHandler := &handlers.AdminHandler{
		Sessions:  sessionManager,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for mutating actions
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Public Routes
	mux.HandleFunc("/", homeHandler.Landing)
	mux.HandleFunc("/shop", homeHandler.Shop)

	// Auth (login + two-phase registration)
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/register", authHandler.RegisterGet)
	mux.HandleFunc("POST /register/details", rateLimiter.Middleware(authHandler.RegisterDetailsPost))
	mux.HandleFunc("/register/password", authHandler.RegisterPasswordGet)
	mux.HandleFunc("POST /register/password", rateLimiter.Middleware(authHandler.RegisterPasswordPost))
	mux.HandleFunc("/logout", authHandler.Logout)

	// User-only routes (route guard enforces access)
	mux.HandleFunc("/checkout", homeHandler.Checkout)
	mux.HandleFunc("/my-orders", orderHandler.MyOrders)
	mux.HandleFunc("POST /my-orders/expand", orderHandler.ToggleExpand)
	mux.HandleFunc("POST /my-orders/cancel/request", orderHandler.RequestCancel)
	mux.HandleFunc("POST /my-orders/cancel/confirm", rateLimiter.Middleware(orderHandler.ConfirmCancel))
	mux.HandleFunc("POST /my-orders/cancel/dismiss", orderHandler.DismissCancel)
	mux.HandleFunc("POST /my-orders/image-failed", orderHandler.ImageFailed)
	mux.HandleFunc("/user/samples", sampleHandler.Page)
	mux.HandleFunc("POST /user/samples", rateLimiter.Middleware(sampleHandler.Submit))

	// Admin landing
	mux.HandleFunc("/admin", adminHandler.Home)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	guard := &handlers.RouteGuard{Sessions: sessionManager}

	// Wrap the router with middleware chain
	// Chain: Logger -> RequestID -> Security Headers -> CSRF -> Route Guard -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.RequestIDMiddleware(
			handlers.SecurityHeadersMiddleware(
				CSRF(
					guard.Middleware(mux),
				),
			),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
