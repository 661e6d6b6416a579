package domain

import (
	"github.com/google/uuid"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID     = NewError(KindNotFound, "failed to parse UUID")
	ErrTokenNotFound = NewError(KindAuthFailure, "credentials were not provided")
	ErrTokenInvalid  = NewError(KindAuthFailure, "token is invalid")
	ErrTokenExpired  = NewError(KindAuthFailure, "token has expired")
	ErrTokenRevoked  = NewError(KindAuthFailure, "token has been revoked")
)

// Viewer is the identity a core call runs as. Anonymous callers are an
// explicit value, never a zero user id standing in for one.
type Viewer struct {
	UserID    uuid.UUID
	anonymous bool
}

func AnonymousViewer() Viewer {
	return Viewer{anonymous: true}
}

func UserViewer(id uuid.UUID) Viewer {
	return Viewer{UserID: id}
}

func (v Viewer) IsAnonymous() bool {
	return v.anonymous
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize applies the default page size and clamps negative values.
func (p Pagination) Normalize(defaultLimit int) Pagination {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

type Page[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}
