package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"musicdott/internal/embed"
	"musicdott/internal/groove"
	"musicdott/internal/pipeline"
	"musicdott/internal/scanner"
)

type NormalizeRequest struct {
	Raw      string `json:"raw"`
	Provider string `json:"provider,omitempty"`
}

type ScanRequest struct {
	Content string `json:"content"`
}

type ScanResponse struct {
	Fragments []scanner.Fragment `json:"fragments"`
}

type GrooveBlocksRequest struct {
	URL string `json:"url"`
}

type GrooveBlocksResponse struct {
	Pattern groove.Pattern `json:"pattern"`
	Blocks  []groove.Block `json:"blocks"`
}

type ImportRequest struct {
	SongsCSV    string `json:"songs_csv,omitempty"`
	LessonsCSV  string `json:"lessons_csv,omitempty"`
	StudentsCSV string `json:"students_csv,omitempty"`
	AssetsDir   string `json:"assets_dir,omitempty"`
	OutputDir   string `json:"output_dir,omitempty"`
}

type JobResponse struct {
	ID          string            `json:"id"`
	Status      JobStatus         `json:"status"`
	Stage       string            `json:"stage,omitempty"`
	Progress    int               `json:"progress"`
	Total       int               `json:"total"`
	Warnings    []string          `json:"warnings,omitempty"`
	Error       string            `json:"error,omitempty"`
	Summary     *pipeline.Summary `json:"summary,omitempty"`
	CreatedAt   string            `json:"created_at"`
	StartedAt   *string           `json:"started_at,omitempty"`
	CompletedAt *string           `json:"completed_at,omitempty"`
}

// handleNormalize classifies a raw content fragment. With no provider it runs
// the full dispatch; with one it applies only that provider's rule.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var mod embed.Module
	switch req.Provider {
	case "":
		mod = embed.Normalize(req.Raw)
	case string(embed.ProviderGrooveScribe):
		mod = embed.NormalizeGrooveScribe(req.Raw)
	case string(embed.ProviderYouTube):
		mod = embed.NormalizeYouTube(req.Raw)
	case string(embed.ProviderSpotify):
		mod = embed.NormalizeSpotify(req.Raw)
	default:
		http.Error(w, "Unknown provider", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mod)
}

// handleScan finds embeddable fragments in free-form content and normalizes
// each one.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScanResponse{Fragments: scanner.Scan(req.Content)})
}

// handleGrooveBlocks parses a GrooveScribe URL and splits its pattern into
// per-measure blocks.
func (s *Server) handleGrooveBlocks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req GrooveBlocksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	pattern, err := groove.ParseURL(req.URL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GrooveBlocksResponse{
		Pattern: pattern,
		Blocks:  groove.ToBlocks(pattern),
	})
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Request fields override the server configuration per job.
	jobConfig := s.config
	if req.SongsCSV != "" {
		jobConfig.SongsCSV = req.SongsCSV
	}
	if req.LessonsCSV != "" {
		jobConfig.LessonsCSV = req.LessonsCSV
	}
	if req.StudentsCSV != "" {
		jobConfig.StudentsCSV = req.StudentsCSV
	}
	if req.AssetsDir != "" {
		jobConfig.AssetsDir = req.AssetsDir
	}
	if req.OutputDir != "" {
		jobConfig.OutputDir = req.OutputDir
	}

	if err := jobConfig.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	job := s.jobMgr.CreateJob(jobConfig)
	s.logger.Info("Created import job %s", job.ID)

	go s.processJob(job)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.jobToResponse(job))
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs := s.jobMgr.ListJobs()
	responses := make([]*JobResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = s.jobToResponse(job)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

func (s *Server) handleJobAction(w http.ResponseWriter, r *http.Request) {
	// Extract job ID from path: /api/jobs/{id} or /api/jobs/{id}/cancel
	path := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.Error(w, "Job ID required", http.StatusBadRequest)
		return
	}

	jobID := parts[0]

	// Handle GET /api/jobs/{id}
	if r.Method == http.MethodGet && len(parts) == 1 {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.jobToResponse(job))
		return
	}

	// Handle POST /api/jobs/{id}/cancel
	if r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "cancel" {
		job, err := s.jobMgr.GetJob(jobID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		if job.Cancel != nil {
			job.Cancel()
		}

		s.jobMgr.UpdateJob(jobID, func(j *Job) {
			j.Status = StatusCancelled
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "cancelled"})
		return
	}

	http.Error(w, "Invalid request", http.StatusBadRequest)
}

func (s *Server) processJob(job *Job) {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Store cancel function in job
	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Cancel = cancel
		j.Status = StatusRunning
	})

	s.logger.Info("Starting job %s", job.ID)

	hooks := pipeline.Hooks{
		OnFileStart: func(name string, rows int) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Stage = name
				j.Progress = 0
				j.Total = rows
			})
		},
		OnRow: func() {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Progress++
			})
		},
		OnWarning: func(msg string) {
			s.jobMgr.UpdateJob(job.ID, func(j *Job) {
				j.Warnings = append(j.Warnings, msg)
			})
		},
	}

	summary, err := pipeline.Run(ctx, job.Config, s.logger, hooks)
	if err != nil {
		s.logger.Error("Import failed: %v", err)
		s.jobMgr.UpdateJob(job.ID, func(j *Job) {
			if j.Status != StatusCancelled {
				j.Status = StatusFailed
				j.Error = err.Error()
			}
		})
		return
	}

	s.jobMgr.UpdateJob(job.ID, func(j *Job) {
		j.Status = StatusCompleted
		j.Summary = &summary
	})

	s.logger.Info("Job %s completed successfully", job.ID)
}

func (s *Server) jobToResponse(job *Job) *JobResponse {
	resp := &JobResponse{
		ID:        job.ID,
		Status:    job.Status,
		Stage:     job.Stage,
		Progress:  job.Progress,
		Total:     job.Total,
		Warnings:  job.Warnings,
		Error:     job.Error,
		Summary:   job.Summary,
		CreatedAt: job.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if job.StartedAt != nil {
		started := job.StartedAt.Format("2006-01-02 15:04:05")
		resp.StartedAt = &started
	}

	if job.CompletedAt != nil {
		completed := job.CompletedAt.Format("2006-01-02 15:04:05")
		resp.CompletedAt = &completed
	}

	return resp
}
