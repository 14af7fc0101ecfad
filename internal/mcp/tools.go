package mcp

// Tool describes one MCP tool.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler executes a tool call and returns the response text.
type ToolHandler func(params map[string]interface{}) (string, error)

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "File path, absolute or relative to the project root",
	}
}

// GetToolDefinitions returns all tool definitions.
func (s *Server) GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "readFile",
			Description: "Read a file's full content and make it the active file. The previously active file collapses to a structural summary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "peekFile",
			Description: "Look at a file without switching the active file. Returns a structural summary of its public surface, or full content for the active file and unsupported types.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editFile",
			Description: "Replace exactly one occurrence of a string in a file. Fails if the string is missing or ambiguous. The edited file becomes active.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"oldText": map[string]interface{}{
						"type":        "string",
						"description": "Exact text to replace; must occur exactly once",
					},
					"newText": map[string]interface{}{
						"type":        "string",
						"description": "Replacement text",
					},
				},
				"required": []string{"path", "oldText", "newText"},
			},
		},
		{
			Name:        "writeFile",
			Description: "Create or overwrite a file with the given content, creating parent directories as needed. The written file becomes active.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Full file content",
					},
				},
				"required": []string{"path", "content"},
			},
		},
		{
			Name:        "forgetFile",
			Description: "Drop a file from context tracking entirely, deactivating it if active.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "contextStatus",
			Description: "Report the active file, every cached summary with its sizes, and total context savings.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "contextMetrics",
			Description: "Aggregated per-operation metrics from this project's history: call counts, failures, latency, and bytes saved.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"sinceHours": map[string]interface{}{
						"type":        "number",
						"default":     24,
						"description": "Look-back window in hours",
					},
				},
			},
		},
	}
}
