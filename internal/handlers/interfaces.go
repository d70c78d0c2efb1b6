package handlers

import (
	"context"

	"github.com/vidhub/backend/internal/auth"
	"github.com/vidhub/backend/internal/videos"
)

// VideoService is the aggregation pipeline behind the video endpoints.
type VideoService interface {
	FetchPopular(ctx context.Context, page, perPage int, opts videos.Options) videos.PageResult
	Search(ctx context.Context, query string, page, perPage int, opts videos.Options) videos.PageResult
	FetchByID(ctx context.Context, id string) videos.DetailResult
}

// SessionManager issues and checks frontend session tokens.
type SessionManager interface {
	Issue(ctx context.Context, subject string) (auth.Session, error)
	Validate(ctx context.Context, token string) (auth.Session, error)
	Revoke(ctx context.Context, token string)
}

// PasswordChecker verifies the frontend access password.
type PasswordChecker interface {
	Check(candidate string) error
}
