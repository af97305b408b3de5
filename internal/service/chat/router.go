package chat

import (
	"context"
	"log/slog"
	"strings"
)

var mathKeywords = []string{"*", "multiply", "add", "sum", "plus"}

var knowledgeKeywords = []string{
	"policy", "sop", "document", "docs", "on-call", "runbook", "guide",
	"resume", "cv", "profile", "experience", "skills", "projects", "education",
	"summary", "strengths", "achievements",
}

// route decides the strategy for one request. Gates run first; a cheap
// top-1 retrieval probe pre-empts the keyword heuristics when its score
// clears the semantic threshold.
func (s *Service) route(ctx context.Context, message string, clientKey string) Decision {
	if !s.limiter.Allow(clientKey) {
		return Decision{Route: RouteBlocked, Reason: ReasonRateLimited}
	}

	if s.guard.IsUnsafe(message) {
		return Decision{Route: RouteBlocked, Reason: ReasonUnsafeInput}
	}

	var topScore float64
	var probeErr string

	chunks, err := s.retriever.Retrieve(ctx, message, 1)
	if err != nil {
		// A down retriever routes like "nothing relevant found". The log
		// line and ProbeErr keep the two distinguishable downstream.
		slog.WarnContext(ctx, "retrieval probe failed; treating score as 0", "error", err)
		probeErr = err.Error()
	} else if len(chunks) > 0 {
		topScore = chunks[0].Score
	}

	if topScore >= s.options.SemanticThreshold {
		return Decision{Route: RouteRag, Reason: ReasonSemantic, TopScore: topScore, ProbeErr: probeErr}
	}

	m := strings.ToLower(message)
	isMath := containsAny(m, mathKeywords)
	isKnowledge := containsAny(m, knowledgeKeywords)

	var route Route
	switch {
	case isMath && isKnowledge:
		route = RouteHybrid
	case isMath:
		route = RouteTool
	case isKnowledge:
		route = RouteRag
	default:
		route = RouteLLM
	}

	return Decision{Route: route, Reason: ReasonHeuristic, TopScore: topScore, ProbeErr: probeErr}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
