package server

import (
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

// Realtime event names.
const (
	EventDependencies       = "dependencies"
	EventDependenciesResult = "dependencies:result"
	EventDependenciesError  = "dependencies:error"
)

// newRealtime creates the socket.io server the panel subscribes to.
func (s *Server) newRealtime() *socket.Server {
	opts := socket.DefaultServerOptions()
	opts.SetCors(&types.Cors{Origin: "*", Credentials: true})

	io := socket.NewServer(nil, opts)
	io.On("connection", func(clients ...any) {
		client, ok := clients[0].(*socket.Socket)
		if !ok {
			return
		}
		logger := s.logger.With("sid", string(client.Id()))
		logger.Debug("Realtime client connected.")

		client.On(EventDependencies, func(args ...any) {
			s.handleRealtimeQuery(client, args...)
		})
		client.On("disconnect", func(...any) {
			logger.Debug("Realtime client disconnected.")
		})
	})
	return io
}

// handleRealtimeQuery answers a "dependencies" event. The payload is an
// object with "target" and optional "mode". When the client passed an ack
// callback it receives the same answer.
func (s *Server) handleRealtimeQuery(client *socket.Socket, args ...any) {
	var ack func([]any, error)
	if n := len(args); n > 0 {
		if fn, ok := args[n-1].(func([]any, error)); ok {
			ack = fn
			args = args[:n-1]
		}
	}

	reply := func(event string, payload any) {
		if ack != nil {
			ack([]any{payload}, nil)
		}
		if err := client.Emit(event, payload); err != nil {
			s.logger.Warn("Failed to emit realtime reply", "event", event, "error", err)
		}
	}

	req := DependenciesRequest{}
	if len(args) > 0 {
		if payload, ok := args[0].(map[string]any); ok {
			req.Target, _ = payload["target"].(string)
			req.Mode, _ = payload["mode"].(string)
		}
	}
	if err := s.validate.Struct(req); err != nil {
		reply(EventDependenciesError, ErrorResponse{Error: err.Error(), Code: CodeInvalidRequest})
		return
	}

	mode, _ := ParseMode(req.Mode)
	resp, err := s.query(req.Target, mode, transportRealtime)
	if err != nil {
		reply(EventDependenciesError, ErrorResponse{Error: err.Error(), Code: CodeInvalidTarget})
		return
	}
	reply(EventDependenciesResult, resp)
}
