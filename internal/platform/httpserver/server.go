package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	electionadmin "ballotbox/contexts/election-operations/election-admin"
	adminerrors "ballotbox/contexts/election-operations/election-admin/domain/errors"
	adminhttp "ballotbox/contexts/election-operations/election-admin/transport/http"
	voteengine "ballotbox/contexts/election-operations/vote-engine"
	engineerrors "ballotbox/contexts/election-operations/vote-engine/domain/errors"
	enginehttp "ballotbox/contexts/election-operations/vote-engine/transport/http"
	voterregistry "ballotbox/contexts/election-operations/voter-registry"
	registryerrors "ballotbox/contexts/election-operations/voter-registry/domain/errors"
	registryhttp "ballotbox/contexts/election-operations/voter-registry/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ballotbox/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	admin    electionadmin.Module
	registry voterregistry.Module
	engine   voteengine.Module
}

func New(
	adminModule electionadmin.Module,
	registryModule voterregistry.Module,
	engineModule voteengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		admin:    adminModule,
		registry: registryModule,
		engine:   engineModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing table for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/elections", s.handleListElections)
	s.mux.HandleFunc("GET /api/elections/{election_id}", s.handleRegisterPage)

	s.mux.HandleFunc("POST /api/send_voting_email", s.handleSendVotingEmail)

	s.mux.HandleFunc("GET /api/vote/{token}", s.handleVotePage)
	s.mux.HandleFunc("POST /api/vote/{token}", s.handleCastVote)
	s.mux.HandleFunc("GET /api/results/{election_id}", s.handleElectionResults)

	s.mux.HandleFunc("POST /api/admin/elections", s.handleCreateElection)
	s.mux.HandleFunc("PUT /api/admin/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("POST /api/admin/elections/{election_id}/positions", s.handleCreatePosition)
	s.mux.HandleFunc("POST /api/admin/positions/{position_id}/candidates", s.handleCreateCandidate)
	s.mux.HandleFunc("POST /api/admin/update_election_status", s.handleUpdateElectionStatus)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admin.Handler.AvailableElectionsHandler(r.Context())
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	resp, err := s.admin.Handler.RegisterPageHandler(r.Context(), electionID)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendVotingEmail(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.SendVotingEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.SendVotingEmailHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotePage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	resp, err := s.engine.Handler.VotePageHandler(r.Context(), token)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req enginehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	token := r.PathValue("token")
	resp, err := s.engine.Handler.CastVoteHandler(r.Context(), token, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleElectionResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	resp, err := s.engine.Handler.ElectionResultsHandler(r.Context(), electionID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := requireAdminEmail(w, r)
	if !ok {
		return
	}
	var req adminhttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.admin.Handler.CreateElectionHandler(r.Context(), actorEmail, req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := requireAdminEmail(w, r)
	if !ok {
		return
	}
	var req adminhttp.UpdateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	electionID := r.PathValue("election_id")
	resp, err := s.admin.Handler.UpdateElectionHandler(r.Context(), actorEmail, electionID, req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := requireAdminEmail(w, r)
	if !ok {
		return
	}
	var req adminhttp.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	electionID := r.PathValue("election_id")
	resp, err := s.admin.Handler.CreatePositionHandler(r.Context(), actorEmail, electionID, req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	actorEmail, ok := requireAdminEmail(w, r)
	if !ok {
		return
	}
	var req adminhttp.CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	positionID := r.PathValue("position_id")
	resp, err := s.admin.Handler.CreateCandidateHandler(r.Context(), actorEmail, positionID, req)
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateElectionStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.admin.Handler.UpdateElectionStatusHandler(r.Context())
	if err != nil {
		writeAdminDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requireAdminEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	actorEmail := strings.TrimSpace(r.Header.Get("X-Admin-Email"))
	if actorEmail == "" {
		writeAdminError(w, http.StatusUnauthorized, "missing_admin_email", "X-Admin-Email header is required")
		return "", false
	}
	return actorEmail, true
}

func writeAdminDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminerrors.ErrAdminOnly):
		writeAdminError(w, http.StatusForbidden, "admin_only", err.Error())
	case errors.Is(err, adminerrors.ErrElectionNotFound),
		errors.Is(err, adminerrors.ErrPositionNotFound):
		writeAdminError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, adminerrors.ErrVotingClosed):
		writeAdminError(w, http.StatusForbidden, "voting_closed", err.Error())
	case errors.Is(err, adminerrors.ErrInvalidElectionInput),
		errors.Is(err, adminerrors.ErrInvalidPositionInput),
		errors.Is(err, adminerrors.ErrInvalidCandidateInput):
		writeAdminError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAdminError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrInvalidStudentID):
		writeRegistryError(w, http.StatusBadRequest, "invalid_student_id", err.Error())
	case errors.Is(err, registryerrors.ErrVoterNotFound):
		writeRegistryError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, registryerrors.ErrElectionNotFound):
		writeRegistryError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidMail):
		writeRegistryError(w, http.StatusBadRequest, "invalid_mail", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEngineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engineerrors.ErrVoterNotFound):
		writeEngineError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, engineerrors.ErrElectionNotFound):
		writeEngineError(w, http.StatusNotFound, "election_not_found", err.Error())
	case errors.Is(err, engineerrors.ErrAlreadyVoted):
		writeEngineError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, engineerrors.ErrTooManyVotes):
		writeEngineError(w, http.StatusUnprocessableEntity, "too_many_votes", err.Error())
	case errors.Is(err, engineerrors.ErrUnknownCandidate):
		writeEngineError(w, http.StatusUnprocessableEntity, "unknown_candidate", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidBallotInput):
		writeEngineError(w, http.StatusBadRequest, "invalid_ballot", err.Error())
	case errors.Is(err, engineerrors.ErrTransactionConflict):
		writeEngineError(w, http.StatusConflict, "transaction_conflict", err.Error())
	default:
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAdminError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, adminhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeEngineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
