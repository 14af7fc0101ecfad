package mcp

import (
	"errors"
	"fmt"

	focuserrors "focus/internal/errors"
)

// handleMessage processes an incoming message and returns a response, or
// nil for notifications.
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}
	return NewErrorMessage(msg.Id, InvalidRequest, "invalid message: not a request or notification", nil)
}

func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("handling request", "method", msg.Method, "id", msg.Id)

	switch msg.Method {
	case "initialize":
		return NewResultMessage(msg.Id, s.handleInitialize())
	case "tools/list":
		return NewResultMessage(msg.Id, map[string]interface{}{
			"tools": s.GetToolDefinitions(),
		})
	case "tools/call":
		params, ok := msg.Params.(map[string]interface{})
		if !ok {
			return NewErrorMessage(msg.Id, InvalidParams, "invalid params: expected object", nil)
		}
		result, err := s.handleCallTool(params)
		if err != nil {
			return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
		}
		return NewResultMessage(msg.Id, result)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("method not found: %s", msg.Method), nil)
	}
}

func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("client initialized")
	default:
		s.logger.Debug("ignoring notification", "method", msg.Method)
	}
}

func (s *Server) handleInitialize() map[string]interface{} {
	return map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]interface{}{
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    "focus",
			"version": s.version,
		},
	}
}

// handleCallTool dispatches to the registered handler. Tool-level failures
// become text results flagged isError, not JSON-RPC errors, so the client
// model can read and react to them.
func (s *Server) handleCallTool(params map[string]interface{}) (interface{}, error) {
	toolName, ok := params["name"].(string)
	if !ok {
		return nil, fmt.Errorf("missing tool name")
	}
	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}

	s.logger.Info("calling tool", "tool", toolName)

	text, err := handler(toolParams)
	if err != nil {
		var fe *focuserrors.FocusError
		if errors.As(err, &fe) {
			// FocusError messages already carry their [CODE] prefix.
			return textResult(fe.Error(), true), nil
		}
		return textResult(fmt.Sprintf("[%s] %v", focuserrors.InternalError, err), true), nil
	}
	return textResult(text, false), nil
}

func textResult(text string, isError bool) map[string]interface{} {
	result := map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": text,
			},
		},
	}
	if isError {
		result["isError"] = true
	}
	return result
}
