package health

import (
	"encoding/json"
	"net/http"
)

type healthHandler struct{}

func (h *healthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func NewHandler() *healthHandler {
	return &healthHandler{}
}
