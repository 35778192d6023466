package domain

import "time"

// Answer is what the assistant returns for a routed query.
// Exactly one of Entry (latest) or Results (semantic) is populated.
type Answer struct {
	Intent  Intent `json:"intent"`
	Project string `json:"project"`

	// Entry is the most recent entry, for latest-intent queries.
	Entry *Entry `json:"entry,omitempty"`

	// Results are the ranked hits, for semantic-intent queries.
	// Scores are squared-L2 distances (lower = more similar).
	Results []RankedEntry `json:"results,omitempty"`

	// Reply is the localized digest built from Results.
	Reply string `json:"reply,omitempty"`

	// LLMReply is the optional generated answer. Best-effort: language
	// conformance of generated text is not a contract.
	LLMReply string `json:"llm_reply,omitempty"`

	Took time.Duration `json:"took"`
}

// AuthContext carries the identity attached to an authenticated request.
type AuthContext struct {
	Subject   string `json:"subject"`
	Admin     bool   `json:"admin"`
	ExpiresAt int64  `json:"expires_at"`
}

// IsAdmin reports whether the context belongs to an administrator.
func (a *AuthContext) IsAdmin() bool {
	return a != nil && a.Admin
}

// TokenClaims is the payload carried inside an auth token.
type TokenClaims struct {
	Subject   string
	Admin     bool
	IssuedAt  int64
	ExpiresAt int64
}

// LoginRequest is the credential payload for admin login.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
