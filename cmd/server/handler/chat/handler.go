package chat

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/w-h-a/qa"
)

type chatHandler struct {
	engine *qa.Engine
}

type chatRequest struct {
	Message   string `json:"message"`
	ClientKey string `json:"client_key,omitempty"`
}

func (h *chatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if len(strings.TrimSpace(req.Message)) == 0 {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	clientKey := req.ClientKey
	if len(clientKey) == 0 {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			clientKey = host
		} else {
			clientKey = r.RemoteAddr
		}
	}

	requestId := r.Header.Get("X-Request-Id")

	result, err := h.engine.Ask(r.Context(), req.Message, requestId, clientKey)
	if err != nil {
		slog.ErrorContext(r.Context(), "chat request failed", "error", err, "request_id", requestId)
		writeError(w, http.StatusInternalServerError, "failed to answer the request")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func NewHandler(engine *qa.Engine) *chatHandler {
	return &chatHandler{
		engine: engine,
	}
}
