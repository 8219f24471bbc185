package server

import (
	"time"

	"resumelens/internal/analyze"
	"resumelens/internal/config"
	lensErrors "resumelens/internal/errors"
	"resumelens/internal/roles"
)

// AnalyzeTextRequest is the JSON body for the local analysis endpoint.
// Either Role (a taxonomy lookup) or Skills (an ad-hoc requirement list)
// selects the target profile; both empty means no keyword matching.
type AnalyzeTextRequest struct {
	ResumeText string   `json:"resumeText"`
	Role       string   `json:"role,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// AIAnalyzeRequest is the JSON body for the AI-backed analysis endpoint.
type AIAnalyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobRole        string `json:"jobRole"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// MatchRequest is the JSON body for the job-match endpoint.
type MatchRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Local analysis pipeline
	Engine *analyze.Engine

	// Role taxonomy
	Roles        *roles.Store
	rolesWatcher *roles.Watcher

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *lensErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, store *roles.Store, logger *lensErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		Engine:         analyze.NewEngine(logger),
		Roles:          store,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
