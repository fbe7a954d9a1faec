package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/formstore"
	"github.com/jonathan/jobboard/internal/jobform"
	"github.com/jonathan/jobboard/internal/types"
)

// FormResponse is a form session and its current document
type FormResponse struct {
	ID       uuid.UUID    `json:"id"`
	Document jobform.Form `json:"document"`
}

// SetFieldRequest sets a text or numeric field
type SetFieldRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

// ListItemRequest addresses a list field, with the row text for updates
type ListItemRequest struct {
	Path  string `json:"path"`
	Value string `json:"value,omitempty"`
}

// EditsRequest is a batch of edits applied all or nothing
type EditsRequest struct {
	Edits []jobform.Edit `json:"edits"`
}

// SubmitResponse reports a posting accepted by the job service
type SubmitResponse struct {
	ID      string          `json:"id"`
	JobUUID string          `json:"job_uuid"`
	Record  types.JobRecord `json:"record"`
}

// handleCreateForm opens a session on a fresh template document
func (s *Server) handleCreateForm(w http.ResponseWriter, _ *http.Request) {
	doc, err := s.template()
	if err != nil {
		s.writeError(w, err)
		return
	}

	form := jobform.New(doc)
	id := s.sessions.Create(form)
	s.log.Debug("form session created", zap.String("id", id.String()))
	s.jsonResponse(w, http.StatusCreated, FormResponse{ID: id, Document: form})
}

// handleGetForm returns the current document of a session
func (s *Server) handleGetForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	form, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FormResponse{ID: id, Document: form})
}

// handleReplaceForm swaps the session's document for the JSON object in the body
func (s *Server) handleReplaceForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	doc, err := formstore.FromJSON(data)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	form, err := s.sessions.Update(id, func(jobform.Form) (jobform.Form, error) {
		return jobform.New(doc), nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Debug("form document replaced", zap.String("id", id.String()), zap.Int("fields", doc.Len()))
	s.jsonResponse(w, http.StatusOK, FormResponse{ID: id, Document: form})
}

// handleDeleteForm closes a session
func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	if !s.sessions.Delete(id) {
		s.writeError(w, &ErrSessionNotFound{ID: id.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetField sets a text or numeric field by dotted path
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.applyEdit(w, r, jobform.Edit{Op: jobform.OpSet, Path: req.Path, Value: req.Value})
}

// handleAddListItem appends an empty row to a list field
func (s *Server) handleAddListItem(w http.ResponseWriter, r *http.Request) {
	var req ListItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.applyEdit(w, r, jobform.Edit{Op: jobform.OpAddItem, Path: req.Path})
}

// handleSetListItem replaces one row of a list field
func (s *Server) handleSetListItem(w http.ResponseWriter, r *http.Request) {
	index, err := listIndex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req ListItemRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.applyEdit(w, r, jobform.Edit{Op: jobform.OpSetItem, Path: req.Path, Index: index, Value: req.Value})
}

// handleRemoveListItem removes one row of the list named by ?path=
func (s *Server) handleRemoveListItem(w http.ResponseWriter, r *http.Request) {
	index, err := listIndex(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	path := r.URL.Query().Get("path")
	if path == "" {
		s.writeError(w, &ErrValidation{Field: "path", Message: "query parameter is required"})
		return
	}
	s.applyEdit(w, r, jobform.Edit{Op: jobform.OpRemoveItem, Path: path, Index: index})
}

// handleApplyEdits applies a batch of edits; a failing edit leaves the form untouched
func (s *Server) handleApplyEdits(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	var req EditsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	form, err := s.sessions.Update(id, func(f jobform.Form) (jobform.Form, error) {
		return f.ApplyAll(req.Edits...)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FormResponse{ID: id, Document: form})
}

// handlePayload previews the record a submit would send
func (s *Server) handlePayload(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	form, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.projector.Project(form.Snapshot())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

// handleSubmit validates the projected record and posts it to the job service
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	form, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.projector.Submission(form.Snapshot())
	if err != nil {
		s.writeError(w, err)
		return
	}

	created, err := s.jobs.CreateJob(r.Context(), rec)
	if err != nil {
		s.log.Warn("job submission failed", zap.String("session", id.String()), zap.Error(err))
		s.writeError(w, err)
		return
	}

	s.log.Info("job submitted",
		zap.String("session", id.String()),
		zap.String("id", created.ID),
		zap.String("job_uuid", rec.JobUUID),
	)
	s.jsonResponse(w, http.StatusCreated, SubmitResponse{ID: created.ID, JobUUID: rec.JobUUID, Record: rec})
}

// applyEdit runs one edit against the session named in the URL
func (s *Server) applyEdit(w http.ResponseWriter, r *http.Request, edit jobform.Edit) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}
	form, err := s.sessions.Update(id, func(f jobform.Form) (jobform.Form, error) {
		return f.Apply(edit)
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, FormResponse{ID: id, Document: form})
}

// sessionID parses the {id} path value, answering 400 when it is malformed
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form ID")
		return uuid.Nil, false
	}
	return id, true
}

func listIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: "must be an integer: " + raw}
	}
	return index, nil
}
