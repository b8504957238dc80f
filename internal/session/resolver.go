// Package session resolves authenticated identities to application
// profiles. The profile is cached server-side in Redis with a short TTL and
// re-read on expiry, replacing the old pattern of trusting a client-stored
// blob for the whole session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/repository"
	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned when no identity is present.
var ErrNotAuthenticated = errors.New("not authenticated")

// ProfileTTL bounds how long a cached profile is trusted before it is
// re-read from the store.
const ProfileTTL = 15 * time.Minute

const cacheKeyPrefix = "session:profile:"

// DefaultLanguage is assigned to profiles provisioned on first sight.
const DefaultLanguage = "en"

type Resolver struct {
	profiles repository.ProfileRepository
	cache    *redis.Client
	logger   *zap.Logger
}

// NewResolver wires the resolver. cache may be nil; resolution then always
// goes to the store (used in tests and degraded mode).
func NewResolver(profiles repository.ProfileRepository, cache *redis.Client, logger *zap.Logger) *Resolver {
	return &Resolver{profiles: profiles, cache: cache, logger: logger}
}

// Resolve maps an authenticated identity to its profile.
//
// Cache hit returns immediately. On a miss the profile is read from the
// store; an identity seen for the first time gets a client profile
// provisioned with the first name derived from the email's local part.
// Resolve is idempotent: a second call for the same identity returns the
// same profile id and never creates a duplicate.
func (r *Resolver) Resolve(ctx context.Context, identityRef uuid.UUID, email string) (*models.Profile, error) {
	if identityRef == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	if p := r.fromCache(ctx, identityRef); p != nil {
		return p, nil
	}

	profile, err := r.profiles.GetByIdentityRef(ctx, identityRef)
	if err != nil {
		return nil, fmt.Errorf("resolve profile: %w", err)
	}
	if profile == nil {
		profile, err = r.profiles.Provision(ctx, identityRef, email, FirstNameFromEmail(email), DefaultLanguage)
		if err != nil {
			return nil, fmt.Errorf("provision profile: %w", err)
		}
		r.logger.Info("provisioned profile on first sight",
			zap.String("profile_id", profile.ID.String()),
			zap.String("role", profile.Role),
		)
	}

	r.toCache(ctx, identityRef, profile)
	return profile, nil
}

// Invalidate drops the cached profile for an identity. Called on logout
// and after any change that affects what the profile is allowed to see.
func (r *Resolver) Invalidate(ctx context.Context, identityRef uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Del(ctx, cacheKey(identityRef)).Err(); err != nil {
		r.logger.Warn("session cache invalidate failed", zap.Error(err))
	}
}

func (r *Resolver) fromCache(ctx context.Context, ref uuid.UUID) *models.Profile {
	if r.cache == nil {
		return nil
	}
	raw, err := r.cache.Get(ctx, cacheKey(ref)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Cache trouble degrades to a store read, never to a failure.
			r.logger.Warn("session cache read failed", zap.Error(err))
		}
		return nil
	}
	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		r.logger.Warn("session cache entry corrupt, dropping", zap.Error(err))
		r.Invalidate(ctx, ref)
		return nil
	}
	return &p
}

func (r *Resolver) toCache(ctx context.Context, ref uuid.UUID, p *models.Profile) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(ref), raw, ProfileTTL).Err(); err != nil {
		r.logger.Warn("session cache write failed", zap.Error(err))
	}
}

func cacheKey(ref uuid.UUID) string {
	return cacheKeyPrefix + ref.String()
}

// FirstNameFromEmail derives a display name from the local part of an
// email address: "ayse.yilmaz@example.com" becomes "ayse.yilmaz".
func FirstNameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}
