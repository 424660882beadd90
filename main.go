// Command set-game starts the Set card game server.
//
// It supports three commands:
//  1. "serve" (default) runs the HTTP server exposing the REST API, WebSocket push and an /mcp HTTP endpoint
//  2. "mcp" runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "play" runs a single game in the terminal
//
// Flags control host/port, config directory, debug logging and optional ngrok
// tunneling. Every flag can also be set from the environment or a .env file.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/set-game/api"
	"github.com/wricardo/set-game/game/config"
	"github.com/wricardo/set-game/game/service"
	"github.com/wricardo/set-game/game/session"
	"github.com/wricardo/set-game/transport/mcp"
	"github.com/wricardo/set-game/transport/websocket"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Set Card Game Server"
)

const (
	sessionTTL      = 24 * time.Hour
	cleanupInterval = time.Hour
)

var log = logrus.WithField("component", "main")

func main() {
	// Load .env file if it exists, before flags read the environment
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Warn("error loading .env file")
		}
	} else {
		log.Info("loaded environment variables from .env file")
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Fatal("exiting")
	}
}

// newApp builds the root command. Flags declared here are visible to every subcommand.
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "set-game",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "Directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("SET_DEBUG"),
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "Ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:    "serve",
				Aliases: []string{"server", "http"},
				Usage:   "Run HTTP server with API, WebSocket, and MCP endpoint",
				Action:  runServe,
			},
			{
				Name:    "mcp",
				Aliases: []string{"stdio-mcp", "mcp-stdio"},
				Usage:   "Run MCP stdio server with internal HTTP server",
				Action:  runStdioMCP,
			},
			{
				Name:  "play",
				Usage: "Play a game in the terminal",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Value: config.DefaultConfigName,
						Usage: "Configuration to play",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Override the configuration's shuffle seed (0 keeps it)",
					},
				},
				Action: runPlay,
			},
		},
	}
}

// initializeServices wires the session and config managers into the game service
func initializeServices(configDir string) (service.GameService, *session.Manager, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessionManager := session.NewManager()
	return service.NewGameService(sessionManager, configManager), sessionManager, nil
}

// newHandler mounts the REST API at the root and the MCP proxy at /mcp
func newHandler(apiServer http.Handler, mcpClient *mcp.Client) http.Handler {
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)

	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	return mainRouter
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp proxy endpoint.
// If ngrok is enabled it also provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, err := initializeServices(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	mcpClient := mcp.NewClient("http://" + addr)
	handler := newHandler(api.NewServer(gameService, hub), mcpClient)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessionCleanupRoutine(ctx, sessionManager, cleanupInterval)
	}()

	serveErr := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":      addr,
			"api":       fmt.Sprintf("http://%s/api", addr),
			"websocket": fmt.Sprintf("ws://%s/ws?session=<session_id>", addr),
			"mcp":       fmt.Sprintf("http://%s/mcp", addr),
		}).Infof("%s v%s listening", AppName, Version)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrok(ctx, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"), handler)
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-serveErr:
		stop()
		wg.Wait()
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	wg.Wait()
	log.Info("server stopped")
	return nil
}

// runNgrok serves handler through an ngrok tunnel until ctx is done
func runNgrok(ctx context.Context, authToken, domain string, handler http.Handler) {
	if authToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
		return
	}

	log.Info("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.WithField("domain", domain).Info("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.WithError(err).Error("failed to start ngrok tunnel")
		return
	}

	go func() {
		<-ctx.Done()
		if err := tun.Close(); err != nil {
			log.WithError(err).Warn("failed to close ngrok tunnel")
		}
	}()

	ngrokURL := tun.URL()
	log.WithFields(logrus.Fields{
		"url": ngrokURL,
		"api": ngrokURL + "/api",
		"mcp": ngrokURL + "/mcp",
	}).Info("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && !errors.Is(err, http.ErrServerClosed) && ctx.Err() == nil {
		log.WithError(err).Error("ngrok server error")
	}
	log.Info("ngrok tunnel closed")
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within sessionTTL
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			manager.CleanupExpiredSessions(sessionTTL)
		}
	}
}

// runStdioMCP runs an MCP stdio server. It reuses an API server already
// listening on host:port; if there is none, it starts an internal HTTP API on
// a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	externalURL := fmt.Sprintf("http://%s:%d", cmd.String("host"), cmd.Int("port"))
	baseURL := externalURL

	log.WithField("url", externalURL).Info("checking for external API server")
	if !apiAvailable(ctx, externalURL) {
		log.Info("no external API server found, starting internal HTTP server")

		gameService, _, err := initializeServices(cmd.String("config-dir"))
		if err != nil {
			return err
		}

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		hub := websocket.NewHub()
		go hub.Run()
		defer hub.Stop()

		httpServer := &http.Server{Handler: api.NewServer(gameService, hub)}
		go func() {
			if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("internal HTTP server error")
			}
		}()
		defer httpServer.Close()

		baseURL = "http://" + listener.Addr().String()
	}

	mcpClient := mcp.NewClient(baseURL)
	log.WithField("api", baseURL).Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// apiAvailable reports whether a healthy API server answers at baseURL
func apiAvailable(ctx context.Context, baseURL string) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
