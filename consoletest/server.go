package consoletest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/consoleapi/logger"
)

// Default credentials of the fake.
const (
	DefaultEmail      = "user@example.test"
	DefaultPassword   = "123a123"
	DefaultFullName   = "Test User"
	DefaultAdminToken = "admin-secret"
	// ValidPasscode is the only TOTP passcode the fake accepts.
	ValidPasscode = "123456"
)

// Config configures the fake.
type Config struct {
	Email      string `yaml:"email" mapstructure:"email"`
	Password   string `yaml:"password" mapstructure:"password"`
	FullName   string `yaml:"full_name" mapstructure:"full_name"`
	AdminToken string `yaml:"admin_token" mapstructure:"admin_token"`
	// SessionTTL is how long a session token stays valid.
	SessionTTL time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Email == "" {
		c.Email = DefaultEmail
	}
	if c.Password == "" {
		c.Password = DefaultPassword
	}
	if c.FullName == "" {
		c.FullName = DefaultFullName
	}
	if c.AdminToken == "" {
		c.AdminToken = DefaultAdminToken
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = time.Hour
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Server is the fake API server.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	store      *Store
	config     Config
	log        *logger.Logger
}

// New creates a fake with all routes registered.
func New(cfg Config, log *logger.Logger) *Server {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	// Route on the escaped path so "a%2Fb" stays one segment.
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	s := &Server{
		engine: engine,
		store:  newStore(cfg),
		config: cfg,
		log:    log.WithComponent("consoletest"),
	}

	engine.Use(recovery(s.log), requestID(), requestLogger(s.log))
	s.registerDocs(engine.Group("/api/v0/docs"))
	s.registerUsers(engine.Group("/api/v0/users"))
	s.registerConsole(engine.Group("/api/v0/auth"))
	s.registerAdmin(engine.Group("/api", adminAuth(cfg.AdminToken)))

	return s
}

// NewHTTPTest starts a fake on a loopback httptest server and returns it with
// its base URL. The server is closed when tb finishes.
func NewHTTPTest(tb testing.TB, cfg Config) (*Server, string) {
	tb.Helper()
	s := New(cfg, nil)
	ts := httptest.NewServer(s.Handler())
	tb.Cleanup(ts.Close)
	return s, ts.URL
}

// Handler returns the gin engine as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Store returns the fake's state.
func (s *Server) Store() *Store {
	return s.store
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Start binds addr and begins serving. It returns once the listener is bound;
// serving continues in a goroutine.
func (s *Server) Start(_ context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("consoletest: bind %s: %w", addr, err)
	}
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("fake server error", logger.Fields("error", err.Error()))
		}
	}()

	s.log.Info("fake server started", logger.Fields("addr", listener.Addr().String()))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("consoletest: shutdown: %w", err)
	}
	s.log.Info("fake server stopped")
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
