package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/jobapi"
	"github.com/jonathan/jobboard/internal/types"
)

// maxUploadBytes caps the multipart body accepted by /uploads.
const maxUploadBytes = 20 << 20

// ListJobsResponse represents the response for listing jobs
type ListJobsResponse struct {
	Jobs  []types.JobRecord `json:"jobs"`
	Count int               `json:"count"`
	Total int               `json:"total"`
}

// handleListJobs fetches the job collection, optionally filtered by ?q= and ?type=
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	filter := types.JobFilter{
		Search: r.URL.Query().Get("q"),
		Type:   types.JobType(r.URL.Query().Get("type")),
	}
	matched := types.FilterJobs(jobs, filter)

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:  matched,
		Count: len(matched),
		Total: len(jobs),
	})
}

// handleUpload forwards a document from the multipart field "file" to the upload service
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(jobapi.UploadField)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: jobapi.UploadField, Message: err.Error()})
		return
	}
	defer func() { _ = file.Close() }()

	if err := types.CheckUploadName(header.Filename); err != nil {
		s.writeError(w, &ErrValidation{Field: jobapi.UploadField, Message: err.Error()})
		return
	}

	desc, err := s.jobs.UploadDocument(r.Context(), header.Filename, file)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.log.Info("document uploaded",
		zap.String("filename", desc.Filename),
		zap.String("key", desc.StorageKey),
		zap.Int64("size", desc.FileSize),
	)
	s.jsonResponse(w, http.StatusCreated, desc)
}
