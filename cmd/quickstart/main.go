package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/w-h-a/qa"
	auditmemory "github.com/w-h-a/qa/auditlog/memory"
	"github.com/w-h-a/qa/completer"
	completeranthropic "github.com/w-h-a/qa/completer/anthropic"
	completeropenai "github.com/w-h-a/qa/completer/openai"
	"github.com/w-h-a/qa/guardrail"
	ratelimitmemory "github.com/w-h-a/qa/ratelimit/memory"
	"github.com/w-h-a/qa/ratelimit"
	retrievermemory "github.com/w-h-a/qa/retriever/memory"
	toolhandler "github.com/w-h-a/qa/tool_handler"
	"github.com/w-h-a/qa/tool_handler/add"
	"github.com/w-h-a/qa/tool_handler/multiply"
)

var (
	cfg struct {
		// Completer config
		Provider string `help:"Model provider (openai or anthropic)" default:"openai"`
		ApiKey   string `help:"API Key for the model" default:""`
		Model    string `help:"Model identifier" default:"gpt-4o-mini"`

		// Rate limit config
		MaxRequests int `help:"Requests allowed per window" default:"100"`
	}
)

func main() {
	// Parse inputs
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	var co completer.Completer
	switch cfg.Provider {
	case "anthropic":
		co = completeranthropic.NewCompleter(
			completer.WithApiKey(cfg.ApiKey),
			completer.WithModel(cfg.Model),
		)
	default:
		co = completeropenai.NewCompleter(
			completer.WithApiKey(cfg.ApiKey),
			completer.WithModel(cfg.Model),
		)
	}

	engine := qa.New(
		ratelimitmemory.NewLimiter(
			ratelimit.WithMaxRequests(cfg.MaxRequests),
		),
		guardrail.NewFilter(),
		retrievermemory.NewRetriever(),
		co,
		[]toolhandler.ToolHandler{
			add.NewToolHandler(),
			multiply.NewToolHandler(),
		},
		auditmemory.NewSink(),
	)

	fmt.Println("QA quickstart. Type a question and press enter.")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Error reading input:", err)
			continue
		}
		input = strings.TrimSpace(input)
		if len(input) == 0 {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		result, err := engine.Ask(ctx, input, "", "quickstart")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Println(result.Answer)
		for _, c := range result.Citations {
			fmt.Printf("  [%d] %s (%.2f)\n", c.Rank, c.Source, c.Score)
		}
	}
}
