package ai

import (
	"log/slog"
	"testing"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"

	"google.golang.org/genai"
)

var cbTestLogger = errors.NewLogger(slog.LevelError)

func TestIndependentCircuitBreakerConfigurations(t *testing.T) {
	// Each operation gets its own circuit breaker with its own settings
	analyzeConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.0-flash",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}

	jobMatchConfig := &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "gemini-2.5-pro",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.7,
		},
	}

	analyzeCB := NewAICircuitBreaker("Analyze", analyzeConfig, cbTestLogger)
	jobMatchCB := NewAICircuitBreaker("JobMatch", jobMatchConfig, cbTestLogger)

	tests := []struct {
		name     string
		cb       *AICircuitBreaker
		wantName string
	}{
		{name: "analyze breaker", cb: analyzeCB, wantName: "AI-Analyze"},
		{name: "job match breaker", cb: jobMatchCB, wantName: "AI-JobMatch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := tt.cb.GetStats()

			name, ok := stats["name"].(string)
			if !ok {
				t.Fatal("circuit breaker name not found in stats")
			}
			if name != tt.wantName {
				t.Errorf("breaker name = %q, want %q", name, tt.wantName)
			}

			state, ok := stats["state"].(string)
			if !ok {
				t.Fatal("circuit breaker state not found in stats")
			}
			if state != "closed" {
				t.Errorf("initial state = %q, want %q", state, "closed")
			}

			if !tt.cb.IsHealthy() {
				t.Error("new circuit breaker should report healthy")
			}
		})
	}
}

func TestDisabledCircuitBreakerPassesThrough(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Provider:       "gemini",
		CircuitBreaker: config.CircuitBreakerConfig{Enabled: false},
	}

	cb := NewAICircuitBreaker("Analyze", cfg, cbTestLogger)
	if cb != nil {
		t.Fatal("disabled circuit breaker should be nil")
	}

	// Nil receivers execute the function directly
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Execute() on nil breaker returned error: %v", err)
	}
	if !called {
		t.Error("Execute() on nil breaker should call the function")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("nil breaker stats should report enabled=false")
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker should report healthy")
	}
}

func TestDisabledModelCircuitBreakerPassesThrough(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Provider:       "gemini",
		CircuitBreaker: config.CircuitBreakerConfig{Enabled: false},
	}

	mb := NewModelCircuitBreaker("Analyze", cfg, cbTestLogger)
	if mb != nil {
		t.Fatal("disabled model circuit breaker should be nil")
	}
	if !mb.IsModelHealthy() {
		t.Error("nil model breaker should report healthy")
	}
	if enabled, _ := mb.GetModelStats()["enabled"].(bool); enabled {
		t.Error("nil model breaker stats should report enabled=false")
	}
}
