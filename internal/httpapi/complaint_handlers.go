package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"complainthub.org/internal/complaint"
)

type createComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Priority    string `json:"priority"`
}

type updateComplaintRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Department  *string `json:"department"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

func (a *API) handleComplaintsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createComplaint(w, r)
	case http.MethodGet:
		a.listComplaints(w, r)
	default:
		methodNotAllowed(w, r, "GET, POST")
	}
}

func (a *API) handleComplaintResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/complaints/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "Complaint not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		a.updateComplaint(w, r, id)
	case http.MethodDelete:
		a.deleteComplaint(w, r, id)
	default:
		methodNotAllowed(w, r, "PUT, DELETE")
	}
}

func (a *API) createComplaint(w http.ResponseWriter, r *http.Request) {
	identity, ok := a.identity(w, r)
	if !ok {
		return
	}
	var req createComplaintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := a.complaints.Create(r.Context(), identity, complaint.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Department:  req.Department,
		Priority:    req.Priority,
	})
	if err != nil {
		a.complaintError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) listComplaints(w http.ResponseWriter, r *http.Request) {
	list, err := a.complaints.List(r.Context())
	if err != nil {
		a.complaintError(w, r, err)
		return
	}
	if list == nil {
		list = []complaint.WithOwner{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) updateComplaint(w http.ResponseWriter, r *http.Request, id string) {
	var req updateComplaintRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := a.complaints.Update(r.Context(), id, complaint.Update{
		Title:       req.Title,
		Description: req.Description,
		Department:  req.Department,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		a.complaintError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) deleteComplaint(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.complaints.Delete(r.Context(), id); err != nil {
		a.complaintError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Complaint deleted"})
}

func (a *API) complaintError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, complaint.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "Complaint not found")
	case errors.Is(err, complaint.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
