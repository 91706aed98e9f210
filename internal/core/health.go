package core

import "net/http"

// healthResponse is the JSON response body for the health check endpoint.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

// HandleHealth reports liveness. The relay is stateless with no dependencies
// worth probing per call (Slack reachability is observed per delivery), so a
// running process is a healthy process. Mounted at GET /health, public.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, healthResponse{
		Status:  "healthy",
		Version: s.Config.Build.Version,
		Commit:  s.Config.Build.Commit,
	})
}
