// Package secret resolves password references against external secret
// stores. A reference is either a raw password (returned untouched), a
// Google Secret Manager reference ("gcp-secret:NAME"), or a Vault
// reference ("vault:PATH" or "vault:PATH#FIELD").
package secret

import (
	"context"
	"strings"
)

const (
	gcpPrefix   = "gcp-secret:"
	vaultPrefix = "vault:"
)

// Resolve turns a password argument into the actual password. Plain values
// pass through unchanged so existing scripts keep working.
func Resolve(ctx context.Context, ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, gcpPrefix):
		return resolveGCP(ctx, strings.TrimPrefix(ref, gcpPrefix))
	case strings.HasPrefix(ref, vaultPrefix):
		return resolveVault(ctx, strings.TrimPrefix(ref, vaultPrefix))
	default:
		return ref, nil
	}
}
