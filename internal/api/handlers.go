package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	apperrors "littlelemon/internal/core/errors"
	"littlelemon/internal/data/menu"
)

type menuListResponse struct {
	Items []menu.Item `json:"items"`
	Count int         `json:"count"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleListMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := menu.Filter{
		Categories: nonEmpty(query["category"]),
		Search:     strings.TrimSpace(query.Get("q")),
	}

	items, err := s.menu.List(r.Context(), filter)
	if err != nil {
		s.logger.Warn("list menu failed", "error", err)
		writeError(w, err)
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, menuListResponse{Items: items, Count: len(items)})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.menu.Categories(r.Context())
	if err != nil {
		s.logger.Warn("list categories failed", "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categoriesResponse{Categories: cats})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
		return
	}
	status := s.health.Check(r.Context())
	code := http.StatusOK
	if status.Status != "up" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) handleContract(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(contractYAML)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case code == apperrors.CodeValidationError:
		status = http.StatusBadRequest
	case code == apperrors.CodeNotFound:
		status = http.StatusNotFound
	case code == apperrors.CodeRateLimited:
		status = http.StatusTooManyRequests
	case code == apperrors.CodeStorageUnavailable:
		status = http.StatusServiceUnavailable
	}

	msg := err.Error()
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		msg = de.Message
	}
	writeJSON(w, status, errorResponse{Code: string(code), Message: msg})
}
