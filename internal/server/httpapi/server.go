// Package httpapi exposes the LiftLog API: a single HTTP endpoint accepting
// named operations with variables, answered with a data payload or a list of
// structured errors. Authorization is carried per request as a bearer token;
// each request is resolved to an identity (or anonymous) independently.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dpavlenko/liftlog/internal/common"
	"github.com/dpavlenko/liftlog/internal/logging"
	"github.com/dpavlenko/liftlog/internal/server/config"
	"github.com/dpavlenko/liftlog/internal/server/services"
)

// operation is one entry of the static dispatch table: its auth requirement
// and handler, keyed by operation name.
type operation struct {
	requiresAuth bool
	handle       func(ctx context.Context, vars json.RawMessage) (any, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	sets      *services.SetService
	catalog   *services.CatalogService
	jwtSecret []byte
	ops       map[string]operation
}

// NewServer builds the server and its dispatch table. The table is validated
// here so that a misregistered operation fails startup, not a request.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ss *services.SetService, cs *services.CatalogService) (*Server, error) {
	s := &Server{
		address:   cfg.EndpointAddr,
		logger:    l.With("module", "httpapi"),
		users:     us,
		sets:      ss,
		catalog:   cs,
		jwtSecret: []byte(cfg.SecretKey),
	}

	if err := s.registerOperations(); err != nil {
		return nil, err
	}

	return s, nil
}

// register adds one dispatch-table entry under every given name. The
// original clients drifted between two vocabularies (signup/register,
// sets/workouts, addWorkout/logSet), so each handler answers to both.
func (s *Server) register(op operation, names ...string) error {
	if len(names) == 0 {
		return errors.New("operation registered without a name")
	}
	for _, name := range names {
		if name == "" {
			return errors.New("operation registered with an empty name")
		}
		if op.handle == nil {
			return fmt.Errorf("operation %q registered without a handler", name)
		}
		if _, exists := s.ops[name]; exists {
			return fmt.Errorf("operation %q registered twice", name)
		}
		s.ops[name] = op
	}
	return nil
}

func (s *Server) registerOperations() error {
	s.ops = make(map[string]operation)

	table := []struct {
		names []string
		op    operation
	}{
		{names: []string{"signup", "register"}, op: operation{handle: s.handleSignup}},
		{names: []string{"login"}, op: operation{handle: s.handleLogin}},
		{names: []string{"exercises"}, op: operation{handle: s.handleExercises}},
		{names: []string{"sets", "workouts"}, op: operation{requiresAuth: true, handle: s.handleSets}},
		{names: []string{"addWorkout", "logSet"}, op: operation{requiresAuth: true, handle: s.handleAddWorkout}},
	}

	for _, entry := range table {
		if err := s.register(entry.op, entry.names...); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the full HTTP handler, session-resolver middleware included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", s.handleOperation)
	mux.HandleFunc("/healthz", s.handleHealthz)
	return s.withAuth(mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

type apiRequest struct {
	Operation     string          `json:"operation"`
	OperationName string          `json:"operationName"`
	Variables     json.RawMessage `json:"variables"`
}

type apiError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

type apiResponse struct {
	Data   map[string]any `json:"data,omitempty"`
	Errors []apiError     `json:"errors,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleOperation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		s.writeErrors(w, http.StatusMethodNotAllowed, apiError{Message: "method not allowed"})
		return
	}

	var req apiRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrors(w, http.StatusBadRequest, apiError{Message: "invalid request body"})
		return
	}

	name := req.Operation
	if name == "" {
		name = req.OperationName
	}
	if name == "" {
		s.writeErrors(w, http.StatusBadRequest, apiError{Message: "operation name is required"})
		return
	}

	op, ok := s.ops[name]
	if !ok {
		s.writeErrors(w, http.StatusBadRequest, apiError{Message: fmt.Sprintf("unknown operation %q", name), Path: []string{name}})
		return
	}

	// authorization is checked before the handler touches any store
	if op.requiresAuth && ClaimsFromContext(ctx) == nil {
		s.writeErrors(w, http.StatusOK, apiError{Message: common.ErrorUnauthenticated.Error(), Path: []string{name}})
		return
	}

	result, err := op.handle(ctx, req.Variables)
	if err != nil {
		s.writeErrors(w, http.StatusOK, apiError{Message: s.userSafeMessage(ctx, name, err), Path: []string{name}})
		return
	}

	s.writeJSON(w, http.StatusOK, apiResponse{Data: map[string]any{name: result}})
}

// userSafeMessage maps taxonomy errors to their client-facing messages.
// Anything unrecognized is logged and reported as a generic internal error.
func (s *Server) userSafeMessage(ctx context.Context, opName string, err error) string {
	switch {
	case errors.Is(err, common.ErrorDuplicateEmail):
		return common.ErrorDuplicateEmail.Error()
	case errors.Is(err, common.ErrorInvalidCredentials):
		return common.ErrorInvalidCredentials.Error()
	case errors.Is(err, common.ErrorUnauthenticated):
		return common.ErrorUnauthenticated.Error()
	case errors.Is(err, common.ErrorInvalidInput):
		return err.Error()
	default:
		s.logger.Error(ctx, "operation failed", "operation", opName, "error", err.Error())
		return common.ErrorInternal.Error()
	}
}

func (s *Server) writeErrors(w http.ResponseWriter, status int, errs ...apiError) {
	s.writeJSON(w, status, apiResponse{Errors: errs})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error(context.Background(), "response encoding failed", "error", err.Error())
	}
}
