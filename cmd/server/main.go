package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/drafter/internal/auth"
	"github.com/inamate/drafter/internal/command"
	"github.com/inamate/drafter/internal/config"
	"github.com/inamate/drafter/internal/document"
	mw "github.com/inamate/drafter/internal/middleware"
	"github.com/inamate/drafter/internal/session"
	"github.com/inamate/drafter/internal/store"
	"github.com/inamate/drafter/internal/typeid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	authService := auth.NewService(cfg.JWTSecret)

	// drafter token <user-id> <display-name> prints a day-long token.
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(authService, os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	drawings, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	hub := session.NewHub(drawings)
	go hub.Run()

	if cfg.SettingsFile != "" {
		go func() {
			if err := config.WatchSettings(ctx, cfg.SettingsFile, hub.ApplySettings); err != nil {
				slog.Error("watch settings", "file", cfg.SettingsFile, "error", err)
			}
		}()
	}

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", auth.Me).Methods("GET")
	api.HandleFunc("/commands", listCommands).Methods("GET")
	api.HandleFunc("/drawings", func(w http.ResponseWriter, r *http.Request) {
		names, err := drawings.List(r.Context())
		if err != nil {
			slog.Error("list drawings", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		if names == nil {
			names = []string{}
		}
		writeJSON(w, http.StatusOK, names)
	}).Methods("GET")

	r.HandleFunc("/ws/session/{drawing}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, cfg.OriginPatterns())
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Abort running commands before the connections go away.
		hub.Stop()
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "store", cfg.StoreDriver, "auth", authService.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (document.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	case config.StoreSQLite:
		lite, err := store.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return lite, func() { lite.Close() }, nil
	}
	return &document.MemStore{}, func() {}, nil
}

func issueToken(svc *auth.Service, args []string) error {
	if !svc.Enabled() {
		return errors.New("JWT_SECRET is not set")
	}
	if len(args) != 2 {
		return errors.New("usage: drafter token <user-id> <display-name>")
	}
	token, err := svc.IssueToken(args[0], args[1], 24*time.Hour)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func listCommands(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	}
	descs := command.NewRegistry().Descriptors()
	out := make([]entry, len(descs))
	for i, d := range descs {
		out[i] = entry{d.Name, d.DisplayName}
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, origins []string) {
	drawing := mux.Vars(r)["drawing"]

	user := auth.Guest()
	if authSvc.Enabled() {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		var err error
		user, err = authSvc.ValidateToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: origins,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := session.NewClient(hub, conn, user.ID, user.DisplayName, drawing, clientID, typeid.NewSessionID())

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
