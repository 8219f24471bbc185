package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"
	"resumelens/internal/roles"
	"resumelens/internal/types"
)

func newTestServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()
	appCfg := &config.Config{
		Server: config.ServerConfig{Host: "localhost", Port: "8080"},
		App:    config.AppConfig{MaxFileSize: 5 * 1024 * 1024},
	}
	return NewServer(appCfg, cfg, roles.NewStore(), errors.NewLogger(slog.LevelError))
}

func newTestObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, &config.Config{})
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	return om
}

const sampleResume = `John Doe
john.doe@example.com | (555) 123-4567

Summary
Backend engineer with six years building Go services.

Experience
Senior Software Engineer, Acme Corp (2020-2024)
- Built REST APIs in Go backed by PostgreSQL
- Ran Docker and Kubernetes deployments

Education
B.S. Computer Science, State University

Skills
Go, SQL, REST APIs, Docker, Kubernetes, PostgreSQL`

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		header     map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured skips auth",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"secret-key-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key accepted",
			apiKeys:    []string{"secret-key-123"},
			header:     map[string]string{"X-API-Key": "secret-key-123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bearer token fallback accepted",
			apiKeys:    []string{"secret-key-123"},
			header:     map[string]string{"Authorization": "Bearer secret-key-123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"secret-key-123"},
			header:     map[string]string{"X-API-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, ServerConfig{APIKeys: tt.apiKeys})

			handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey("short"); got != "****" {
		t.Errorf("maskAPIKey(short) = %q", got)
	}
	if got := maskAPIKey("abcdefghijklmnop"); got != "abcdefgh****" {
		t.Errorf("maskAPIKey(long) = %q", got)
	}
}

func TestSplitSkills(t *testing.T) {
	if got := splitSkills("  "); got != nil {
		t.Errorf("splitSkills(blank) = %v, want nil", got)
	}
	got := splitSkills("Go, SQL , ,Docker")
	want := []string{"Go", "SQL", "Docker"}
	if len(got) != len(want) {
		t.Fatalf("splitSkills() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitSkills()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveRole(t *testing.T) {
	s := newTestServer(t, ServerConfig{})

	t.Run("empty inputs mean no matching", func(t *testing.T) {
		role, err := s.resolveRole("", nil)
		if err != nil {
			t.Fatalf("resolveRole() error = %v", err)
		}
		if role != nil {
			t.Errorf("role = %+v, want nil", role)
		}
	})

	t.Run("taxonomy lookup is case-insensitive", func(t *testing.T) {
		role, err := s.resolveRole("backend engineer", nil)
		if err != nil {
			t.Fatalf("resolveRole() error = %v", err)
		}
		if role.Name != "Backend Engineer" {
			t.Errorf("role.Name = %q", role.Name)
		}
	})

	t.Run("explicit skills win over taxonomy", func(t *testing.T) {
		role, err := s.resolveRole("Backend Engineer", []string{"Rust", "gRPC"})
		if err != nil {
			t.Fatalf("resolveRole() error = %v", err)
		}
		if role.Category != "Custom" {
			t.Errorf("role.Category = %q, want Custom", role.Category)
		}
		if len(role.RequiredSkills) != 2 {
			t.Errorf("RequiredSkills = %v", role.RequiredSkills)
		}
	})

	t.Run("unknown role errors", func(t *testing.T) {
		if _, err := s.resolveRole("Underwater Basket Weaver", nil); err == nil {
			t.Error("expected error for unknown role")
		}
	})
}

func TestAnalyzeHandlerJSON(t *testing.T) {
	s := newTestServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := newTestObservability(t)
	handler := s.createAnalyzeHandler(om)

	body, _ := json.Marshal(AnalyzeTextRequest{
		ResumeText: sampleResume,
		Role:       "Backend Engineer",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.IsResume {
		t.Error("IsResume = false, want true")
	}
	if result.Role != "Backend Engineer" {
		t.Errorf("Role = %q", result.Role)
	}
	if result.ATSScore <= 0 || result.ATSScore > 100 {
		t.Errorf("ATSScore = %d, want in (0, 100]", result.ATSScore)
	}
	if len(result.MatchedSkills) == 0 {
		t.Error("expected matched skills for a resume listing the role stack")
	}
}

func TestAnalyzeHandlerMissingText(t *testing.T) {
	s := newTestServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	handler := s.createAnalyzeHandler(newTestObservability(t))

	body, _ := json.Marshal(AnalyzeTextRequest{ResumeText: "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("expected error field in response")
	}
}

func TestAnalyzeHandlerMultipartUpload(t *testing.T) {
	s := newTestServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	handler := s.createAnalyzeHandler(newTestObservability(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := fw.Write([]byte(sampleResume)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.WriteField("skills", "Go, Docker"); err != nil {
		t.Fatalf("write skills field: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.KeywordMatchScore != 100 {
		t.Errorf("KeywordMatchScore = %d, want 100 for fully matched custom skills", result.KeywordMatchScore)
	}
}

func TestAnalyzeHandlerRejectsUnsupportedUpload(t *testing.T) {
	s := newTestServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	handler := s.createAnalyzeHandler(newTestObservability(t))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "resume.xlsx")
	if _, err := fw.Write([]byte("not a resume")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRolesHandler(t *testing.T) {
	s := newTestServer(t, ServerConfig{})
	handler := s.createRolesHandler(newTestObservability(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Categories map[string][]string `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	names, ok := resp.Categories["Software Development"]
	if !ok {
		t.Fatal("missing Software Development category")
	}
	found := false
	for _, n := range names {
		if n == "Backend Engineer" {
			found = true
		}
	}
	if !found {
		t.Errorf("Backend Engineer not listed, got %v", names)
	}

	post := httptest.NewRequest(http.MethodPost, "/api/v1/roles", nil)
	rec = httptest.NewRecorder()
	handler(rec, post)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestParseJSONRequestContentType(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")

	var v map[string]any
	if err := parseJSONRequest(req, &v); err == nil {
		t.Error("expected content-type error")
	}
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer(t, ServerConfig{
		Version:        "test",
		MaxRequestSize: 2048,
		RateLimit: &config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 60,
			BurstCapacity:  5,
			ByIP:           true,
		},
	})
	defer s.RateLimiter.Close()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	s.statsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["service"] != "resumelens" {
		t.Errorf("service = %v", resp["service"])
	}
	if _, ok := resp["rate_limiting"].(map[string]any); !ok {
		t.Error("missing rate_limiting stats")
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, time.Minute, 2, errors.NewLogger(slog.LevelError))
	defer rl.Close()

	if !rl.Allow("ip:10.0.0.1") {
		t.Error("first request should pass")
	}
	if !rl.Allow("ip:10.0.0.1") {
		t.Error("second request within burst should pass")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Error("third request should exceed burst")
	}
	// Independent keys get their own buckets.
	if !rl.Allow("ip:10.0.0.2") {
		t.Error("different key should have its own bucket")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	s := newTestServer(t, ServerConfig{
		RateLimit: &config.RateLimitConfig{
			Enabled:        true,
			RequestsPerMin: 1,
			BurstCapacity:  1,
			ByIP:           true,
		},
	})
	s.RateLimiter = NewRateLimiter(1, time.Minute, 1, s.Logger)
	defer s.RateLimiter.Close()

	handler := s.createRateLimitMiddleware(newTestObservability(t))(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil)
	req.RemoteAddr = "192.0.2.1:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "10.0.0.1:555",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:555",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr host",
			remoteAddr: "192.0.2.4:8080",
			want:       "192.0.2.4",
		},
		{
			name:       "garbage forwarded header ignored",
			remoteAddr: "192.0.2.4:8080",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:       "192.0.2.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
