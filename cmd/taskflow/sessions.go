package main

import (
	"fmt"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/config"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/auth"
)

// sessionChain builds the providers the configuration enables. The database
// lookup is always first.
func sessionChain(cfg *config.Config, store ports.SessionStore) (ports.SessionProvider, error) {
	chain := auth.Chain{auth.NewDatabaseProvider(store, cfg.Session.CookieName, nil)}
	if cfg.Session.CookieSecret != "" {
		cookies := auth.NewCookieStore([]byte(cfg.Session.CookieSecret), cfg.Session.CookieSecure)
		chain = append(chain, auth.NewCookieProvider(cookies, cfg.Session.SignedCookieName, nil))
	}
	switch {
	case cfg.Session.JWTSecret != "":
		chain = append(chain, auth.NewHMACProvider([]byte(cfg.Session.JWTSecret), cfg.Session.JWTIssuer))
	case cfg.Session.JWTPublicKeyPath != "":
		pemBytes, err := cfg.LoadJWTPublicKey()
		if err != nil {
			return nil, err
		}
		key, err := auth.LoadRSAPublicKeyFromPEM(pemBytes)
		if err != nil {
			return nil, fmt.Errorf("parse JWT public key: %w", err)
		}
		chain = append(chain, auth.NewRSAProvider(key, cfg.Session.JWTIssuer))
	}
	return chain, nil
}
