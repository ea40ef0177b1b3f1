package auth

import "github.com/spec-kit/family-photo-service/internal/domain"

// Identity is the authenticated principal derived from token claims or from
// the social-login collaborator. Subject is the durable user identifier.
// ProviderAttributes carries whatever profile data the upstream provider
// verified; it never enters the signed token.
type Identity struct {
	Subject            string
	Role               domain.Role
	ProviderAttributes map[string]string
}
