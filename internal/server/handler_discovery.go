package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	endpoints := []endpointInfo{
		{"/api/v1/schedule", []string{"POST"}, "Schedule a request set under one policy. persist=true stores the run"},
		{"/api/v1/compare", []string{"POST"}, "Run every policy on the same request set, ranked by head movement"},
		{"/api/v1/policies", []string{"GET"}, "Supported scheduling policies"},
		{"/api/v1/health", []string{"GET"}, "Server health and version"},
	}
	if s.store != nil {
		endpoints = append(endpoints,
			endpointInfo{"/api/v1/policies/{policy}/latest", []string{"GET"}, "Most recent stored run for a policy"},
			endpointInfo{"/api/v1/runs", []string{"GET"}, "Stored runs, newest first. Filters: policy, limit, offset"},
			endpointInfo{"/api/v1/runs/{id}", []string{"GET", "DELETE"}, "Single stored run"},
			endpointInfo{"/api/v1/runs/{id}/plot", []string{"GET"}, "Text chart of the visited cylinders"},
		)
	}

	respondOK(w, reqID, discoveryResponse{
		Name:        "seekplan API",
		Version:     "v1",
		Description: "Disk scheduling planner: FCFS, SSTF, SCAN, C-SCAN, LOOK and C-LOOK",
		Endpoints:   endpoints,
	})
}
