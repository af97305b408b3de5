package tool

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	toolhandler "github.com/w-h-a/qa/tool_handler"
)

type toolHandler struct {
	handlers map[string]toolhandler.ToolHandler
}

func (h *toolHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	w.Header().Set("Content-Type", "application/json")

	// Discovery: empty body returns the tool list
	if len(raw) == 0 {
		tools := make([]map[string]any, 0, len(h.handlers))
		for _, th := range h.handlers {
			spec := th.Spec()
			tools = append(tools, map[string]any{
				"name":        spec.Name,
				"description": spec.Description,
				"inputs":      spec.InputSchema,
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"version": "1.0",
			"tools":   tools,
		})
		return
	}

	// Execution
	var req struct {
		Tool string         `json:"tool"`
		Args map[string]any `json:"args"`
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	th, ok := h.handlers[req.Tool]
	if !ok {
		http.Error(w, "unknown tool", http.StatusBadRequest)
		return
	}

	log.Printf("🛠️ Executing '%s'", req.Tool)

	rsp, err := th.Invoke(r.Context(), toolhandler.ToolRequest{Arguments: req.Args})
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	json.NewEncoder(w).Encode(map[string]any{"result": rsp.Content})
}

func NewHandler(handlers ...toolhandler.ToolHandler) *toolHandler {
	byName := map[string]toolhandler.ToolHandler{}
	for _, th := range handlers {
		byName[th.Spec().Name] = th
	}

	return &toolHandler{
		handlers: byName,
	}
}
