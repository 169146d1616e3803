package auth

import (
	"context"
	"net/http"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

// Chain asks each provider in turn; the first session found wins.
type Chain []ports.SessionProvider

func (c Chain) Resolve(ctx context.Context, r *http.Request) (*ports.Session, error) {
	for _, p := range c {
		s, err := p.Resolve(ctx, r)
		if err != nil {
			return nil, err
		}
		if s != nil {
			return s, nil
		}
	}
	return nil, nil
}

var _ ports.SessionProvider = Chain(nil)
