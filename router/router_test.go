// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/tally-board/catalog"
	"github.com/danielhkuo/tally-board/cliparse"
	"github.com/danielhkuo/tally-board/contract"
	"github.com/danielhkuo/tally-board/ledger"
	"github.com/danielhkuo/tally-board/testutil"
	"github.com/danielhkuo/tally-board/voting"
)

func newTestMux(t *testing.T, cfg cliparse.Config) *http.ServeMux {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	l := ledger.New(conn, cfg.VoterSalt, nil)
	svc := voting.NewService(voting.Dependencies{
		Catalog:  catalog.Default(),
		Contract: contract.NewLocalClient(l),
	})
	return NewRouter(svc, l, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "tally-board API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	// 400, 401, 404 are all valid responses depending on handler logic
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"GET", "/candidates"},
		{"GET", "/candidates/Alice/signature"},
		{"POST", "/candidates/init"},

		{"GET", "/tally"},
		{"POST", "/tally/refresh"},
		{"GET", "/tally/stats"},

		{"POST", "/votes"},
		{"POST", "/reset"},

		{"POST", "/contract/set_candidates"},
		{"POST", "/contract/reset_votes"},
		{"POST", "/contract/vote_for_candidate"},
		{"GET", "/contract/total_votes_for/Alice"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestContractRoutesDisabled(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.ServeContract = false
	mux := newTestMux(t, cfg)

	req := httptest.NewRequest("POST", "/contract/vote_for_candidate", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	// only the GET catch-all matches the path
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405 with contract routes disabled, got %d", w.Code)
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"PUT to reset endpoint", "PUT", "/reset", http.StatusMethodNotAllowed},
		{"DELETE to tally endpoint", "DELETE", "/tally", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux := newTestMux(t, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/candidates/Bob/signature", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = httptest.NewRequest("GET", "/candidates/Dave/signature", nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
