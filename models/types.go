package models

import "time"

// Contract RPC request types

type SetCandidatesRequest struct {
	CandidateNames  []string `json:"candidate_names"`
	CandidateHashes []string `json:"candidate_hashes"`
}

type VoteForCandidateRequest struct {
	Candidate     string `json:"candidate"`
	Voter         string `json:"voter"`
	SignedMessage string `json:"signed_message"`
}

// Contract RPC response types

type TotalVotesResponse struct {
	Candidate string `json:"candidate"`
	Votes     uint64 `json:"votes"`
}

type AckResponse struct {
	Message string `json:"message"`
}

// Dashboard request types

// Voter may be omitted when the X-Voter-ID header is set.
type SubmitVoteRequest struct {
	Candidate string `json:"candidate"`
	Voter     string `json:"voter"`
}

// Dashboard response types

type CandidateView struct {
	Name      string `json:"name"`
	DisplayID string `json:"display_id"`
}

type SignatureResponse struct {
	Candidate string `json:"candidate"`
	Signature string `json:"signature"`
}

type TallyEntry struct {
	Candidate string `json:"candidate"`
	DisplayID string `json:"display_id"`
	Votes     uint64 `json:"votes"`
}

type TallyResponse struct {
	Version      uint64       `json:"version"`
	Entries      []TallyEntry `json:"entries"`
	RefreshedAt  *time.Time   `json:"refreshed_at,omitempty"`
	RefreshedAgo string       `json:"refreshed_ago,omitempty"`
}

type RefreshResponse struct {
	Changed bool     `json:"changed"`
	Version uint64   `json:"version"`
	Failed  []string `json:"failed,omitempty"`
}

type SubmitVoteResponse struct {
	Candidate     string          `json:"candidate"`
	Voter         string          `json:"voter"`
	SignedMessage string          `json:"signed_message"`
	Refresh       RefreshResponse `json:"refresh"`
}

type StatsResponse struct {
	Refreshes           int64            `json:"refreshes"`
	Changes             int64            `json:"changes"`
	ReadFailures        int64            `json:"read_failures"`
	ConsecutiveFailures map[string]int64 `json:"consecutive_failures"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
