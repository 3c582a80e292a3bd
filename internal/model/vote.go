package model

import "time"

// Vote values. A vote is a single +1/-1 opinion on a host; at most one
// active vote exists per (voter, target) pair.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote transitions reported back to the caller.
const (
	TransitionCreated   = "created"
	TransitionSwitched  = "switched"
	TransitionUnchanged = "unchanged"
)

// Vote is an active reputation vote in the ledger.
type Vote struct {
	ID        string     `json:"id"`
	VoterID   string     `json:"voterId"`
	TargetID  string     `json:"targetId"`
	Value     int        `json:"value"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	VoterID  string `json:"voterId"`
	TargetID string `json:"targetId"`
	Value    int    `json:"value"`
}

// VoteResponse is the API response after casting a vote.
type VoteResponse struct {
	Vote       Vote   `json:"vote"`
	Transition string `json:"transition"`
	NewScore   int    `json:"newScore"`
	VoteCount  int    `json:"voteCount"`
}
