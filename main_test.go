package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/set-game/api"
	"github.com/wricardo/set-game/game/config"
	"github.com/wricardo/set-game/game/engine"
	"github.com/wricardo/set-game/game/session"
	"github.com/wricardo/set-game/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Set Card Game Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestInitializeServices(t *testing.T) {
	gameService, sessionManager, err := initializeServices("configs")
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	if gameService == nil || sessionManager == nil {
		t.Fatal("Expected game service and session manager to be initialized")
	}

	info, err := gameService.CreateSession(context.Background(), "")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if sessionManager.Count() != 1 {
		t.Errorf("Expected session %s to be tracked, got %d sessions", info.ID, sessionManager.Count())
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	if _, _, err := initializeServices("/non/existent/path"); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestNewHandler(t *testing.T) {
	gameService, _, err := initializeServices("configs")
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	handler := newHandler(api.NewServer(gameService, nil), mcp.NewClient("http://localhost:0"))

	t.Run("API mounted at root", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
	})

	t.Run("MCP rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
		}
	})

	t.Run("MCP initialize", func(t *testing.T) {
		body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","capabilities":{},"clientInfo":{"name":"test","version":"1.0.0"}}}`
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", strings.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Set Card Game") {
			t.Errorf("Expected server info in response, got: %s", w.Body.String())
		}
	})
}

func TestSessionCleanupRoutine(t *testing.T) {
	manager := session.NewManager()
	sess, err := manager.Create("", engine.DefaultGameConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	sess.LastAccessedAt = time.Now().Add(-2 * sessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sessionCleanupRoutine(ctx, manager, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for manager.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected expired session to be removed, got %d sessions", manager.Count())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("Cleanup routine did not stop after cancel")
	}
}

func TestAPIAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	if !apiAvailable(context.Background(), server.URL) {
		t.Error("Expected API to be available")
	}

	server.Close()
	if apiAvailable(context.Background(), server.URL) {
		t.Error("Expected closed server to be unavailable")
	}
}

func practiceEngine(t *testing.T) *engine.GameEngine {
	t.Helper()
	configs, err := config.NewManager("configs")
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	gameConfig, err := configs.LoadConfig("practice")
	if err != nil {
		t.Fatalf("Failed to load practice config: %v", err)
	}
	game, err := engine.NewEngine(gameConfig)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return game
}

func TestPlayLoop(t *testing.T) {
	game := practiceEngine(t)
	input := strings.Join([]string{
		"?",
		"1 2",
		"",
		"frobnicate",
		"99",
		"h",
		"d",
		"s",
		"n",
		"q",
		"d", // never read
	}, "\n")

	var out bytes.Buffer
	if err := playLoop(strings.NewReader(input), &out, game); err != nil {
		t.Fatalf("playLoop failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Commands:",
		"Selection: pending",
		`Unknown command "frobnicate"`,
		"There is no card 99 on the table.",
		"Bye.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, output)
		}
	}

	// d, then n: the last deal happened in game 1
	if game.Snapshot().GameNumber != 2 {
		t.Errorf("Expected a second game, got game %d", game.Snapshot().GameNumber)
	}
	if got := game.Snapshot().DrawPileCount; got != engine.DeckSize-engine.DefaultTableSize {
		t.Errorf("Expected a fresh draw pile after n, got %d", got)
	}
}

func TestPlayLoop_EndOfInput(t *testing.T) {
	game := practiceEngine(t)

	var out bytes.Buffer
	if err := playLoop(strings.NewReader("d\n"), &out, game); err != nil {
		t.Fatalf("playLoop failed: %v", err)
	}
	if len(game.VisibleCards()) != engine.DefaultTableSize+engine.DealSize {
		t.Errorf("Expected %d visible cards, got %d", engine.DefaultTableSize+engine.DealSize, len(game.VisibleCards()))
	}
	if !strings.Contains(out.String(), "15.") {
		t.Errorf("Expected fifteen numbered cards, got:\n%s", out.String())
	}
}

func TestPlayCommand(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader("q\n")
	app.Writer = &out

	err := app.Run(context.Background(), []string{"set-game", "--config-dir", "configs", "play", "--config", "small_table", "--seed", "7"})
	if err != nil {
		t.Fatalf("play command failed: %v", err)
	}
	if !strings.Contains(out.String(), " 9. ") || strings.Contains(out.String(), "10. ") {
		t.Errorf("Expected a nine card table, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Bye.") {
		t.Errorf("Expected the loop to quit, got:\n%s", out.String())
	}
}

func TestPlayCommand_UnknownConfig(t *testing.T) {
	app := newApp()
	app.Reader = strings.NewReader("")
	app.Writer = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{"set-game", "--config-dir", "configs", "play", "--config", "missing"})
	if err == nil {
		t.Error("Expected error for unknown config")
	}
}
