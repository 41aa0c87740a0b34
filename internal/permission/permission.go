package permission

import "strings"

// Token is one of the closed set of capability strings injected by the
// gateway via X-User-Permissions. Tokens are compared exactly; an action is
// allowed when the caller holds ANY of the tokens the action lists.
type Token string

const (
	// CreateAndDeleteBeforeApprove may create requests and delete its own
	// requests while they are still in APPROVING status.
	CreateAndDeleteBeforeApprove Token = "CREATE_REQUEST_AND_DELETE_BEFORE_APPROVE"

	// RequestWork is the elevated token: approve, disapprove and delete any
	// request regardless of ownership or status.
	RequestWork Token = "REQUEST_WORK"

	// ApproveAndDeleteAfterApprove may approve/disapprove, and delete
	// not-yet-approved requests it is responsible for.
	ApproveAndDeleteAfterApprove Token = "APPROVE_REQUEST_AND_DELETE_AFTER_APPROVE"
)

var known = map[Token]struct{}{
	CreateAndDeleteBeforeApprove: {},
	RequestWork:                  {},
	ApproveAndDeleteAfterApprove: {},
}

// Set holds the tokens one caller was granted.
type Set map[Token]struct{}

// ParseSet splits a comma-separated permission header into a Set. Tokens
// outside the recognized set are dropped; an empty header yields an empty
// set, which authorizes nothing.
func ParseSet(header string) Set {
	s := make(Set)
	for _, raw := range strings.Split(header, ",") {
		t := Token(strings.TrimSpace(raw))
		if _, ok := known[t]; ok {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports whether the set contains the token.
func (s Set) Has(t Token) bool {
	_, ok := s[t]
	return ok
}

// HasAny reports whether the set intersects the required tokens. A nil or
// empty set fails closed.
func (s Set) HasAny(required ...Token) bool {
	for _, t := range required {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Caller is the trusted identity bundle for one operation, built once at the
// gateway boundary and passed down explicitly.
type Caller struct {
	CompanyID   int64
	Email       string
	Login       string
	Permissions Set
}
