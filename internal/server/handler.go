package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumelens/internal/ai"
	"resumelens/internal/extract"
	"resumelens/internal/observability"
	"resumelens/internal/roles"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createAnalyzeHandler wraps the local analysis pipeline with observability.
// It accepts either a JSON body with raw resume text or a multipart upload
// with a PDF/DOCX/text file.
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		started := time.Now()
		metrics := om.GetMetrics()

		var (
			result *types.AnalysisResult
			err    error
		)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			result, err = s.analyzeUpload(ctx, r)
		} else {
			result, err = s.analyzeJSON(ctx, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			metrics.TrackAnalysis(ctx, time.Since(started), 0, false, om)
			writeErrorResponse(w, "Analysis failed", err.Error(), http.StatusBadRequest)
			return
		}

		metrics.TrackAnalysis(ctx, time.Since(started), result.ATSScore, true, om)
		if result.IsResume {
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
				attribute.Int("ats.score", result.ATSScore),
				attribute.String("mode", "local"))
		} else {
			metrics.RecordBusinessMetric(ctx, "document_rejected", true, om,
				attribute.String("document.type", string(result.DocumentType)))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("document.is_resume", result.IsResume),
			attribute.Int("ats.score", result.ATSScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// analyzeJSON handles the raw-text request shape.
func (s *Server) analyzeJSON(ctx context.Context, r *http.Request) (*types.AnalysisResult, error) {
	var req AnalyzeTextRequest
	if err := parseJSONRequest(r, &req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, fmt.Errorf("resumeText field is required")
	}

	role, err := s.resolveRole(req.Role, req.Skills)
	if err != nil {
		return nil, err
	}
	return s.Engine.Text(ctx, req.ResumeText, role)
}

// analyzeUpload handles multipart file uploads. The document format is
// taken from the uploaded filename.
func (s *Server) analyzeUpload(ctx context.Context, r *http.Request) (*types.AnalysisResult, error) {
	if err := r.ParseMultipartForm(s.MaxRequestSize); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file field is required: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.Logger.LogError(err, "Failed to close uploaded file")
		}
	}()

	format, err := extract.FormatFromFilename(header.Filename)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	role, err := s.resolveRole(r.FormValue("role"), splitSkills(r.FormValue("skills")))
	if err != nil {
		return nil, err
	}
	return s.Engine.Document(ctx, data, format, role)
}

// resolveRole picks the target profile. An explicit skill list wins over a
// taxonomy lookup; both empty means no keyword matching.
func (s *Server) resolveRole(roleName string, skills []string) (*types.RoleProfile, error) {
	if len(skills) > 0 {
		name := roleName
		if name == "" {
			name = "Custom"
		}
		return roles.Custom(name, skills)
	}
	if roleName != "" {
		return s.Roles.Find(roleName)
	}
	return nil, nil
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// createAIAnalyzeHandler wraps the AI analysis handler with observability
func (s *Server) createAIAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.ai_analyze")
		defer span.End()

		var req AIAnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobRole) == "" {
			err := fmt.Errorf("missing job role")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job role", "jobRole field is required", http.StatusBadRequest)
			return
		}

		if len(req.ResumeText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.ResumeText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("resumeText exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.String("request.job_role", req.JobRole),
			attribute.Bool("request.has_job_description", req.JobDescription != ""),
			attribute.String("operation", "analyze"),
		)

		input := types.AIAnalysisInput{
			ResumeText:     req.ResumeText,
			JobRole:        req.JobRole,
			JobDescription: req.JobDescription,
		}

		// Create AI service for the analyze operation
		analyzeConfig := s.AppConfig.GetAnalyzeConfig()
		aiService, err := ai.NewService(&analyzeConfig, ai.OpAnalyze, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.AIAnalysisOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.AnalyzeResume(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, "resume_analyzed", false, om,
				attribute.String("mode", "ai"))
			writeErrorResponse(w, "Failed to analyze resume", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true, om,
			attribute.String("mode", "ai"),
			attribute.Int("resume.score", result.ResumeScore),
			attribute.Int("ats.score", result.ATSScore))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("resume.score", result.ResumeScore),
			attribute.Int("ats.score", result.ATSScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps the job-match handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.ResumeText) == "" {
			err := fmt.Errorf("missing resume text")
			span.RecordError(err)
			writeErrorResponse(w, "Missing resume text", "resumeText field is required", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.JobDescription) == "" {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(req.ResumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "job_match"),
		)

		input := types.JobMatchInput{
			ResumeText:     req.ResumeText,
			JobDescription: req.JobDescription,
		}

		// Create AI service for the job-match operation
		matchConfig := s.AppConfig.GetJobMatchConfig()
		aiService, err := ai.NewService(&matchConfig, ai.OpJobMatch, s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.JobMatchOutput
		err = metrics.TrackAIOperationWithTokens(ctx, "job_match", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.MatchJob(ctx, input)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, "job_matched", false, om)
			writeErrorResponse(w, "Failed to match resume against job", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "job_matched", true, om,
			attribute.Int("match.score", result.Score),
			attribute.Int("match.matched_count", len(result.MatchedRequirements)),
			attribute.Int("match.missing_count", len(result.MissingRequirements)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.score", result.Score),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRolesHandler lists the role taxonomy grouped by category.
func (s *Server) createRolesHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := om.Tracer("resumelens.api").Start(r.Context(), "api.roles")
		defer span.End()

		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		taxonomy := make(map[string][]string)
		for _, category := range s.Roles.Categories() {
			names, err := s.Roles.Roles(category)
			if err != nil {
				continue
			}
			taxonomy[category] = names
		}

		span.SetAttributes(attribute.Int("roles.categories", len(taxonomy)))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"categories": taxonomy}); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
