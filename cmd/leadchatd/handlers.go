package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/creastat/leadchat"
	"github.com/creastat/leadchat/chat"
	"github.com/creastat/leadchat/session"
)

type chatRequest struct {
	Message      string `json:"message"`
	SessionToken string `json:"session_token"`
}

type bookCallRequest struct {
	SessionToken string           `json:"session_token"`
	Contact      leadchat.Contact `json:"contact"`
	Booking      leadchat.Booking `json:"booking"`
}

type errorResponse struct {
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

func newRouter(service *chat.Service, logger *zap.Logger) http.Handler {
	h := &handler{service: service, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", h.chat)
	mux.HandleFunc("POST /api/book-call", h.bookCall)
	mux.HandleFunc("GET /api/conversations/{token}", h.conversation)
	mux.HandleFunc("GET /api/leads/similar", h.similarLeads)

	return mux
}

type handler struct {
	service *chat.Service
	logger  *zap.Logger
}

func (h *handler) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required", nil)
		return
	}

	result, err := h.service.ProcessTurn(r.Context(), req.SessionToken, req.Message)
	if err != nil {
		h.logger.Error("chat failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *handler) bookCall(w http.ResponseWriter, r *http.Request) {
	var req bookCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	confirmation, err := h.service.BookCall(r.Context(), req.SessionToken, req.Contact, req.Booking)
	if err != nil {
		var verr *leadchat.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, verr.Error(), verr.Missing)
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusNotFound, "conversation not found", nil)
		default:
			h.logger.Error("book call failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to book call", nil)
		}
		return
	}

	writeJSON(w, http.StatusOK, confirmation)
}

func (h *handler) conversation(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Conversation(r.Context(), r.PathValue("token"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "conversation not found", nil)
			return
		}
		h.logger.Error("get conversation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to get conversation", nil)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (h *handler) similarLeads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required", nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	results, err := h.service.SimilarLeads(r.Context(), query, limit)
	if err != nil {
		if errors.Is(err, chat.ErrLeadIndexDisabled) {
			writeError(w, http.StatusServiceUnavailable, "lead index not configured", nil)
			return
		}
		h.logger.Error("similar leads failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to search leads", nil)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, missing []string) {
	writeJSON(w, status, errorResponse{Message: message, Missing: missing})
}
