package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/w-h-a/qa/auditlog"
	"github.com/w-h-a/qa/completer"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

// AnswerToolFallback is returned when the model never settles on a final
// answer within the round limit. A normal terminal outcome, not a failure.
const AnswerToolFallback = "I couldn't complete the request with tools."

// runToolLoop drives the bounded multi-round tool-calling protocol. Tool
// calls within a round are processed strictly in the order received, one at
// a time, to preserve the conversational ordering the model expects. Every
// invocation is persisted to the audit sink before any failure propagates.
func (s *Service) runToolLoop(ctx context.Context, messages []completer.Message, requestId string) (string, Meta, error) {
	start := time.Now()

	meta := Meta{}
	budgetUsed := 0

	for range s.options.MaxRounds {
		rsp, err := s.completer.Complete(ctx, completer.Request{
			Messages:   messages,
			Tools:      s.specs,
			ToolChoice: "auto",
		})
		if err != nil {
			return "", meta, fmt.Errorf("model call failed: %w", err)
		}

		meta.Model = rsp.Model
		if rsp.Usage != nil {
			meta.PromptTokens += rsp.Usage.PromptTokens
			meta.CompletionTokens += rsp.Usage.CompletionTokens
			meta.TotalTokens += rsp.Usage.TotalTokens
		}

		if len(rsp.ToolCalls) == 0 {
			meta.LatencyMs = elapsedMs(start)
			return strings.TrimSpace(rsp.Content), meta, nil
		}

		messages = append(messages, completer.Message{
			Role:      completer.RoleAssistant,
			Content:   rsp.Content,
			ToolCalls: rsp.ToolCalls,
		})

		for _, tc := range rsp.ToolCalls {
			output, use, err := s.invokeTool(ctx, tc, requestId, &budgetUsed)
			if err != nil {
				meta.LatencyMs = elapsedMs(start)
				return "", meta, err
			}

			meta.ToolsUsed = append(meta.ToolsUsed, use)

			messages = append(messages, completer.Message{
				Role:       completer.RoleTool,
				ToolCallId: tc.Id,
				Content:    output,
			})
		}
	}

	meta.LatencyMs = elapsedMs(start)

	return AnswerToolFallback, meta, nil
}

// invokeTool runs one requested tool call through the validation and audit
// pipeline: allow-list, budget, schema, canonical hash, execution, output
// shape. The audit record is written unconditionally before any failure is
// re-raised.
func (s *Service) invokeTool(ctx context.Context, tc completer.ToolCall, requestId string, budgetUsed *int) (string, ToolUse, error) {
	th, ok := s.handlers[tc.Name]
	if !ok {
		return "", ToolUse{}, fmt.Errorf("%w: %s", ErrToolNotAllowed, tc.Name)
	}

	*budgetUsed++
	if *budgetUsed > s.options.ToolBudget {
		return "", ToolUse{}, fmt.Errorf("%w: limit is %d per request", ErrToolBudgetExceeded, s.options.ToolBudget)
	}

	spec := th.Spec()

	args, err := s.validateArgs(spec, tc.Arguments)
	if err != nil {
		return "", ToolUse{}, fmt.Errorf("%w: %s: %v", ErrToolArgumentInvalid, tc.Name, err)
	}

	argsHash := hashArgs(args)
	argsJson, _ := json.Marshal(args)

	toolStart := time.Now()
	rsp, invokeErr := th.Invoke(ctx, toolhandler.ToolRequest{Arguments: args})
	latency := elapsedMs(toolStart)

	output := rsp.Content
	if invokeErr == nil && spec.Output == toolhandler.OutputNumeric {
		if shapeErr := validateNumericOutput(output); shapeErr != nil {
			invokeErr = shapeErr
		}
	}

	rec := auditlog.ToolInvocationRecord{
		RequestId:     requestId,
		ToolName:      tc.Name,
		ArgsHash:      argsHash,
		ArgsJson:      string(argsJson),
		LatencyMs:     latency,
		OutputPreview: output,
		Success:       invokeErr == nil,
	}
	if invokeErr != nil {
		rec.Error = invokeErr.Error()
	}

	if logErr := s.sink.RecordToolInvocation(ctx, rec); logErr != nil {
		slog.ErrorContext(ctx, "failed to persist tool invocation record", "error", logErr, "tool", tc.Name)
	}

	if invokeErr != nil {
		return "", ToolUse{}, fmt.Errorf("%w: %s: %v", ErrToolExecutionFailed, tc.Name, invokeErr)
	}

	return output, ToolUse{Name: tc.Name, Args: args, LatencyMs: latency}, nil
}

// validateArgs checks the raw JSON arguments against the tool's schema:
// every required field must be present, integral, and within the bound.
// All decoded arguments are forwarded; a schema with no required list
// constrains nothing but must not strip what the model sent.
func (s *Service) validateArgs(spec toolhandler.ToolSpec, raw string) (map[string]any, error) {
	var decoded map[string]any
	if len(strings.TrimSpace(raw)) == 0 {
		decoded = map[string]any{}
	} else if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %v", err)
	}

	args := make(map[string]any, len(decoded))
	for k, v := range decoded {
		args[k] = v
	}

	for _, key := range requiredFields(spec.InputSchema) {
		v, err := toolhandler.IntArg(decoded, key)
		if err != nil {
			return nil, err
		}
		if v > s.options.MaxAbsToolArg || v < -s.options.MaxAbsToolArg {
			return nil, fmt.Errorf("argument %q is out of bounds", key)
		}
		args[key] = v
	}

	return args, nil
}

func requiredFields(schema map[string]any) []string {
	if schema == nil {
		return nil
	}

	switch required := schema["required"].(type) {
	case []string:
		return required
	case []any:
		fields := make([]string, 0, len(required))
		for _, f := range required {
			if name, ok := f.(string); ok {
				fields = append(fields, name)
			}
		}
		return fields
	default:
		return nil
	}
}

// validateNumericOutput enforces the numeric output contract declared by
// the arithmetic catalog's specs.
func validateNumericOutput(output string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(output), 64); err != nil {
		return fmt.Errorf("tool returned a non-numeric result: %q", output)
	}
	return nil
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
