package utcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	goutcp "github.com/universal-tool-calling-protocol/go-utcp"

	toolhandler "github.com/w-h-a/qa/tool_handler"
)

// NewUtcpClient connects to the given UTCP tool servers. The providers
// config file the client wants is generated from the addresses.
func NewUtcpClient(ctx context.Context, addrs []string) (goutcp.UtcpClientInterface, error) {
	var configPath string

	if len(addrs) > 0 {
		tmpPath, err := createTempConfig(addrs)
		if err != nil {
			return nil, err
		}
		configPath = tmpPath
		defer os.Remove(tmpPath)
	}

	client, err := goutcp.NewUTCPClient(
		ctx,
		&goutcp.UtcpClientConfig{
			ProvidersFilePath: configPath,
		},
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("utcp client setup failed: %w", err)
	}

	return client, nil
}

// DiscoverToolHandlers asks the connected servers for their tools and wraps
// each one in a handler. The caller decides which of them to allow.
func DiscoverToolHandlers(client goutcp.UtcpClientInterface, query string, limit int) ([]toolhandler.ToolHandler, error) {
	remoteTools, err := client.SearchTools(query, limit)
	if err != nil {
		return nil, fmt.Errorf("utcp discovery failed: %w", err)
	}

	var handlers []toolhandler.ToolHandler
	for _, tool := range remoteTools {
		spec := toolhandler.ToolSpec{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: objectSchema(tool.Inputs.Properties, tool.Inputs.Required),
		}
		handlers = append(handlers, NewToolHandler(
			WithUtcpClient(client),
			WithToolName(tool.Name),
			WithToolSpec(spec),
		))
	}

	return handlers, nil
}

// objectSchema rebuilds a complete object schema from a remote tool's parts.
// Argument validation reads the required list, so it must survive the trip
// through discovery rather than being flattened to the bare properties map.
func objectSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func createTempConfig(addrs []string) (string, error) {
	type providerConfig struct {
		Type    string            `json:"provider_type"`
		Name    string            `json:"name"`
		URL     string            `json:"url"`
		Method  string            `json:"http_method"`
		Headers map[string]string `json:"headers"`
	}

	config := struct {
		Providers []providerConfig `json:"providers"`
	}{}

	for _, u := range addrs {
		parsed, err := url.Parse(u)
		if err != nil {
			return "", err
		}
		config.Providers = append(config.Providers, providerConfig{
			Type:   "http",
			Name:   parsed.Hostname(),
			URL:    u,
			Method: "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		})
	}

	f, err := os.CreateTemp("", "utcp_config_*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(config); err != nil {
		return "", err
	}

	return f.Name(), nil
}
