package firebase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/riskibarqy/findrival/internal/domain/user"
	"github.com/riskibarqy/findrival/internal/platform/cache"
	"github.com/riskibarqy/findrival/internal/platform/logging"
	"github.com/riskibarqy/findrival/internal/usecase"
)

const (
	defaultPrincipalCacheTTL        = time.Minute
	defaultPrincipalCacheMaxEntries = 10000
)

// TokenVerifier is the part of *auth.Client the verifier needs.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type VerifierConfig struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
}

// Verifier resolves Firebase ID tokens to principals. Successful lookups are
// cached by token hash; failures always go back to Firebase.
type Verifier struct {
	tokens TokenVerifier
	cache  *cache.Store[user.Principal]
	logger *logging.Logger
}

// NewVerifier accepts a nil TokenVerifier; such a verifier rejects every token.
func NewVerifier(tokens TokenVerifier, cfg VerifierConfig, logger *logging.Logger) *Verifier {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultPrincipalCacheTTL
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = defaultPrincipalCacheMaxEntries
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Verifier{
		tokens: tokens,
		cache:  cache.NewStore[user.Principal](cfg.CacheTTL, cfg.CacheMaxEntries),
		logger: logger,
	}
}

func (v *Verifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}
	if v.tokens == nil {
		return user.Principal{}, fmt.Errorf("%w: identity provider is not configured", usecase.ErrUnauthorized)
	}

	return v.cache.GetOrLoadUntil(ctx, tokenCacheKey(token), func(ctx context.Context) (user.Principal, time.Time, error) {
		decoded, err := v.tokens.VerifyIDToken(ctx, token)
		if err != nil {
			v.logger.DebugContext(ctx, "firebase token rejected", "error", err)
			return user.Principal{}, time.Time{}, fmt.Errorf("%w: %v", usecase.ErrUnauthorized, err)
		}
		if decoded == nil || strings.TrimSpace(decoded.UID) == "" {
			return user.Principal{}, time.Time{}, fmt.Errorf("%w: token has no uid", usecase.ErrUnauthorized)
		}

		principal := user.Principal{UserID: decoded.UID}
		if email, ok := decoded.Claims["email"].(string); ok {
			principal.Email = email
		}
		return principal, tokenExpiry(decoded), nil
	})
}

// tokenExpiry bounds the cache entry by the token lifetime.
func tokenExpiry(decoded *auth.Token) time.Time {
	if decoded.Expires <= 0 {
		return time.Time{}
	}
	return time.Unix(decoded.Expires, 0)
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
