package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-idler/internal/balance"
	"github.com/vovakirdan/tui-idler/internal/rng"
	"github.com/vovakirdan/tui-idler/internal/sim"
	"github.com/vovakirdan/tui-idler/internal/storage"
	"github.com/vovakirdan/tui-idler/internal/world"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.idler/host_key.
	HostKeyPath string

	// DBPath is the path to the saves database.
	DBPath string

	// TickMS is the tick interval for served sessions, in milliseconds.
	TickMS int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.idler/idler.db",
		TickMS:      100,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer wraps a Wish SSH server serving play sessions. Each connecting
// user gets their own character, keyed by SSH username.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	cfg    balance.Config
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(serverCfg SSHServerConfig, cfg balance.Config) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "idler-ssh",
	})

	// Open storage
	store, err := storage.Open(serverCfg.DBPath)
	if err != nil {
		logger.Warn("could not open saves database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: serverCfg,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := serverCfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".idler", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(serverCfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(serverCfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea play session for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	user := sshSession.User()
	if user == "" {
		user = "wanderer"
	}

	engine := sim.New(s.cfg)
	w, report := s.loadWorld(engine, user)

	model := NewModel(engine, w, rng.Live(), s.store, s.config.TickMS)
	model.width = pty.Window.Width
	model.height = pty.Window.Height
	if report != nil {
		model = model.WithOfflineReport(*report)
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loadWorld resumes the user's character, reconciling offline progress
// against the last save time. A fresh world is created on first connect or
// storage failure.
func (s *SSHServer) loadWorld(engine *sim.Engine, user string) (*world.State, *sim.OfflineReport) {
	if s.store == nil {
		return world.New(user), nil
	}

	w, err := s.store.LoadLatest(user)
	if err != nil {
		s.logger.Warn("could not load save", "user", user, "error", err)
		return world.New(user), nil
	}
	if w == nil {
		return world.New(user), nil
	}

	savedAt, err := s.store.LastSavedAt(user)
	if err != nil || savedAt.IsZero() {
		return w, nil
	}

	elapsed := int64(time.Now().UTC().Sub(savedAt).Seconds())
	report := engine.ReconcileWorld(w, elapsed)
	return w, &report
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
