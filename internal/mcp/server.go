package mcp

import (
	"bufio"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"focus/internal/controller"
	"focus/internal/storage"
)

// Server speaks MCP over stdio and dispatches tool calls to the lifecycle
// controller.
type Server struct {
	stdin     io.Reader
	stdout    io.Writer
	scanner   *bufio.Scanner
	logger    *slog.Logger
	version   string
	sessionID string

	ctrl    *controller.Controller
	metrics *storage.DB
	tools   map[string]ToolHandler
}

// NewServer creates an MCP server. The metrics database is optional; a nil
// db disables operation metrics without affecting tool behavior.
func NewServer(version string, ctrl *controller.Controller, metrics *storage.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	server := &Server{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		logger:    logger,
		version:   version,
		sessionID: uuid.NewString(),
		ctrl:      ctrl,
		metrics:   metrics,
		tools:     make(map[string]ToolHandler),
	}
	server.RegisterTools()
	return server
}

// SessionID identifies this server instance in logs and metrics.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Start runs the message loop until stdin closes.
func (s *Server) Start() error {
	s.logger.Info("MCP server starting",
		"version", s.version,
		"session", s.sessionID,
	)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			var se *streamError
			if errors.As(err, &se) {
				// The scanner never recovers; a retry loop would spin.
				s.logger.Error("transport failure, shutting down", "error", err.Error())
				return err
			}
			s.logger.Error("error reading message", "error", err.Error())

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, err.Error())
			}
			continue
		}

		response := s.handleMessage(msg)
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing).
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil
}

// SetStdout sets the output stream (for testing).
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
