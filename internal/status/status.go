// Package status exposes a read-only HTTP view of a running election, in
// the same mux.NewRouter/PathPrefix("/api") subrouter shape the cluster's
// other node types use for their own debug endpoints.
package status

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"electionfsm/internal/election"
)

// Source is the read side of an ElectionFSM the status endpoint needs.
// election.ElectionFSM satisfies this directly.
type Source interface {
	State() election.State
	LeadershipTermID() int64
	LogPosition() int64
	LeaderMember() *election.MemberID
}

// Report is the JSON body served from GET /api/status.
type Report struct {
	State        string `json:"state"`
	Term         int64  `json:"term"`
	LogPosition  int64  `json:"log_position"`
	LeaderMember *int32 `json:"leader_member,omitempty"`
}

var _ Source = (*election.ElectionFSM)(nil)

// Server serves a single election's status over HTTP.
type Server struct {
	selfID election.MemberID
	source Source
	http   *http.Server
}

// NewServer builds a status server for fsm, not yet listening.
func NewServer(selfID election.MemberID, fsm Source) *Server {
	s := &Server{selfID: selfID, source: fsm}

	r := mux.NewRouter()
	sr := r.PathPrefix("/api").Subrouter()
	sr.Path("/status").Methods(http.MethodGet).HandlerFunc(s.handleStatus)

	s.http = &http.Server{Handler: r}
	return s
}

// Serve blocks, serving status requests on lis until it errors or closes.
func (s *Server) Serve(lis net.Listener) error {
	return s.http.Serve(lis)
}

// Close shuts the HTTP server down without waiting for in-flight requests.
func (s *Server) Close() error {
	return s.http.Close()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report := Report{
		State:       s.source.State().String(),
		Term:        s.source.LeadershipTermID(),
		LogPosition: s.source.LogPosition(),
	}
	if leader := s.source.LeaderMember(); leader != nil {
		id := int32(*leader)
		report.LeaderMember = &id
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}
