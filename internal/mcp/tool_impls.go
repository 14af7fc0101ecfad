package mcp

import (
	"context"
	"fmt"
	"time"

	"focus/internal/controller"
	focuserrors "focus/internal/errors"
	"focus/internal/output"
	"focus/internal/storage"
)

// RegisterTools wires every tool handler.
func (s *Server) RegisterTools() {
	s.tools["readFile"] = s.handleReadFile
	s.tools["peekFile"] = s.handlePeekFile
	s.tools["editFile"] = s.handleEditFile
	s.tools["writeFile"] = s.handleWriteFile
	s.tools["forgetFile"] = s.handleForgetFile
	s.tools["contextStatus"] = s.handleContextStatus
	s.tools["contextMetrics"] = s.handleContextMetrics
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required parameter: %s", key)
	}
	return v, nil
}

// record persists one operation outcome; a nil metrics db is a no-op.
func (s *Server) record(rec storage.OperationRecord) {
	if s.metrics == nil {
		return
	}
	if err := s.metrics.RecordOperation(rec); err != nil {
		s.logger.Debug("failed to record operation metric", "error", err)
	}
}

// recordResult fills in the common fields from a file result.
func (s *Server) recordResult(op string, started time.Time, result *controller.FileResult, err error) {
	rec := storage.OperationRecord{
		Operation:  op,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if err != nil {
		rec.Failed = true
		rec.ErrorCode = string(focuserrors.CodeOf(err))
	} else if result != nil {
		rec.Path = result.RelPath
		rec.ResultTag = string(result.Tag)
		rec.ReturnedBytes = len(result.Content)
		if result.Tag == controller.TagFull {
			rec.FullBytes = len(result.Content)
		}
	}
	s.record(rec)
}

func (s *Server) handleReadFile(params map[string]interface{}) (string, error) {
	path, err := stringParam(params, "path")
	if err != nil {
		return "", err
	}
	started := time.Now()
	result, err := s.ctrl.Read(context.Background(), path)
	s.recordResult("read", started, result, err)
	if err != nil {
		return "", err
	}
	return result.Render(), nil
}

func (s *Server) handlePeekFile(params map[string]interface{}) (string, error) {
	path, err := stringParam(params, "path")
	if err != nil {
		return "", err
	}
	started := time.Now()
	result, err := s.ctrl.Peek(context.Background(), path)
	s.recordResult("peek", started, result, err)
	if err != nil {
		return "", err
	}
	return result.Render(), nil
}

func (s *Server) handleEditFile(params map[string]interface{}) (string, error) {
	path, err := stringParam(params, "path")
	if err != nil {
		return "", err
	}
	oldText, err := stringParam(params, "oldText")
	if err != nil {
		return "", err
	}
	newText, ok := params["newText"].(string)
	if !ok {
		return "", fmt.Errorf("missing required parameter: newText")
	}

	started := time.Now()
	result, err := s.ctrl.Edit(context.Background(), path, oldText, newText)
	s.recordResult("edit", started, result, err)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

func (s *Server) handleWriteFile(params map[string]interface{}) (string, error) {
	path, err := stringParam(params, "path")
	if err != nil {
		return "", err
	}
	content, ok := params["content"].(string)
	if !ok {
		return "", fmt.Errorf("missing required parameter: content")
	}

	started := time.Now()
	result, err := s.ctrl.Write(context.Background(), path, content)
	s.recordResult("write", started, result, err)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

func (s *Server) handleForgetFile(params map[string]interface{}) (string, error) {
	path, err := stringParam(params, "path")
	if err != nil {
		return "", err
	}
	started := time.Now()
	tracked, message := s.ctrl.Forget(path)
	s.record(storage.OperationRecord{
		Operation:  "forget",
		Path:       path,
		ResultTag:  fmt.Sprintf("tracked=%t", tracked),
		DurationMs: time.Since(started).Milliseconds(),
	})
	return message, nil
}

func (s *Server) handleContextStatus(params map[string]interface{}) (string, error) {
	started := time.Now()
	status := s.ctrl.Status()
	s.record(storage.OperationRecord{
		Operation:  "status",
		DurationMs: time.Since(started).Milliseconds(),
	})
	return status.Format(), nil
}

func (s *Server) handleContextMetrics(params map[string]interface{}) (string, error) {
	if s.metrics == nil {
		return "metrics disabled", nil
	}

	sinceHours := 24.0
	if v, ok := params["sinceHours"].(float64); ok && v > 0 {
		sinceHours = v
	}
	since := time.Now().Add(-time.Duration(sinceHours * float64(time.Hour)))

	aggregates, err := s.metrics.Aggregates(since)
	if err != nil {
		return "", fmt.Errorf("failed to aggregate metrics: %w", err)
	}

	payload := map[string]interface{}{
		"sinceHours": sinceHours,
		"session":    s.sessionID,
		"operations": aggregates,
	}
	data, err := output.EncodeJSONIndented(payload, "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
