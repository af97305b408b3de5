package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/w-h-a/qa/auditlog"
	"github.com/w-h-a/qa/completer"
	"github.com/w-h-a/qa/guardrail"
	"github.com/w-h-a/qa/ratelimit"
	"github.com/w-h-a/qa/retriever"
	toolhandler "github.com/w-h-a/qa/tool_handler"
)

const (
	// AnswerRateLimited is the fixed reply for a rejected admission.
	AnswerRateLimited = "Too many requests. Please slow down."

	// AnswerBlocked is the fixed apology for unsafe input.
	AnswerBlocked = "I can’t help with that request."
)

// state names a node of the request flow. The graph is acyclic: entry fans
// out on the route and every other node leads to terminal.
type state int

const (
	stateEntry state = iota
	stateBlocked
	stateRagRetrieve
	stateToolAnswer
	stateRagAnswer
	stateHybridAnswer
	stateTerminal
)

// transition is the pure routing function over states.
func transition(current state, route Route) state {
	switch current {
	case stateEntry:
		switch route {
		case RouteBlocked:
			return stateBlocked
		case RouteRag, RouteHybrid:
			return stateRagRetrieve
		case RouteTool, RouteLLM:
			// The tool loop answers without invoking tools when none are needed.
			return stateToolAnswer
		}
	case stateRagRetrieve:
		if route == RouteHybrid {
			return stateHybridAnswer
		}
		return stateRagAnswer
	}
	return stateTerminal
}

// Service is the top-level orchestrator: one request in, one immutable
// result out. Collaborators are constructor-injected.
type Service struct {
	options   Options
	limiter   ratelimit.Limiter
	guard     guardrail.Filter
	retriever retriever.Retriever
	completer completer.Completer
	handlers  map[string]toolhandler.ToolHandler
	specs     []toolhandler.ToolSpec
	sink      auditlog.Sink
}

// Handle runs one request through the flow and returns its result. Blocked
// and rate-limited outcomes are normal results; every other failure is
// surfaced to the caller with no partial answer.
func (s *Service) Handle(ctx context.Context, message string, requestId string, clientKey string) (*Result, error) {
	start := time.Now()

	result, err := s.run(ctx, message, requestId, clientKey)

	rec := auditlog.ChatRecord{
		RequestId: requestId,
		Message:   message,
		LatencyMs: elapsedMs(start),
		Success:   err == nil,
	}
	if result != nil {
		rec.Route = string(result.Meta.Route)
		rec.Model = result.Meta.Model
	}

	if logErr := s.sink.RecordChat(ctx, rec); logErr != nil {
		slog.ErrorContext(ctx, "failed to persist chat record", "error", logErr, "request_id", requestId)
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) run(ctx context.Context, message string, requestId string, clientKey string) (*Result, error) {
	decision := s.route(ctx, message, clientKey)

	result := &Result{
		RequestId: requestId,
		Citations: []Citation{},
		Meta: Meta{
			Route:    decision.Route,
			TopScore: decision.TopScore,
		},
	}
	if len(decision.ProbeErr) > 0 {
		result.Meta.Extra = map[string]any{"probe_error": decision.ProbeErr}
	}

	var chunks []retriever.Chunk

	for st := transition(stateEntry, decision.Route); st != stateTerminal; st = transition(st, decision.Route) {
		switch st {
		case stateBlocked:
			result.Meta.Blocked = true
			result.Meta.Reason = decision.Reason
			if decision.Reason == ReasonRateLimited {
				result.Answer = AnswerRateLimited
			} else {
				result.Answer = AnswerBlocked
			}

		case stateRagRetrieve:
			kept, citations, err := s.retrieveAndFilter(ctx, message)
			if err != nil {
				return result, err
			}
			chunks = kept
			result.Citations = citations
			result.Meta.RetrievalCount = len(kept)
			result.Meta.MinScore = s.options.MinScore

		case stateToolAnswer:
			answer, meta, err := s.runToolLoop(ctx, s.buildDirectMessages(message), requestId)
			if err != nil {
				return result, err
			}
			result.Answer = answer
			result.Meta.merge(meta)

		case stateRagAnswer:
			if len(chunks) == 0 {
				result.Answer = AnswerRefusal
				result.Meta.NoContextFound = true
				break
			}
			answer, meta, err := s.runToolLoop(ctx, s.buildRagMessages(message, chunks), requestId)
			if err != nil {
				return result, err
			}
			result.Answer = answer
			result.Meta.merge(meta)

		case stateHybridAnswer:
			if len(chunks) == 0 {
				result.Answer = AnswerRefusal
				result.Meta.NoContextFound = true
				break
			}
			answer, meta, err := s.runToolLoop(ctx, s.buildHybridMessages(message, chunks), requestId)
			if err != nil {
				return result, err
			}
			result.Answer = answer
			result.Meta.merge(meta)
		}
	}

	return result, nil
}

func New(
	limiter ratelimit.Limiter,
	guard guardrail.Filter,
	r retriever.Retriever,
	c completer.Completer,
	handlers []toolhandler.ToolHandler,
	sink auditlog.Sink,
	opts ...Option,
) *Service {
	if limiter == nil {
		panic("rate limiter is required")
	}
	if guard == nil {
		panic("guardrail filter is required")
	}
	if r == nil {
		panic("retriever is required")
	}
	if c == nil {
		panic("completer is required")
	}
	if sink == nil {
		panic("audit sink is required")
	}

	byName := map[string]toolhandler.ToolHandler{}
	specs := make([]toolhandler.ToolSpec, 0, len(handlers))
	for _, th := range handlers {
		spec := th.Spec()
		byName[spec.Name] = th
		specs = append(specs, spec)
	}

	return &Service{
		options:   NewOptions(opts...),
		limiter:   limiter,
		guard:     guard,
		retriever: r,
		completer: c,
		handlers:  byName,
		specs:     specs,
		sink:      sink,
	}
}
