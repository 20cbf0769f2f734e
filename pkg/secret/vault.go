package secret

import (
	"context"
	"strings"

	vaultapi "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
)

const defaultVaultField = "password"

// parseVaultRef splits "PATH#FIELD" into its parts. The field defaults to
// "password" when omitted.
func parseVaultRef(ref string) (path, field string) {
	path, field, found := strings.Cut(ref, "#")
	if !found || field == "" {
		field = defaultVaultField
	}
	return path, field
}

// resolveVault reads one field of a Vault secret. Address and token come
// from the standard VAULT_ADDR and VAULT_TOKEN environment variables.
func resolveVault(ctx context.Context, ref string) (string, error) {
	path, field := parseVaultRef(ref)

	client, err := vaultapi.NewClient(vaultapi.DefaultConfig())
	if err != nil {
		return "", errors.Wrap(err, "failed to create vault client")
	}

	s, err := client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read vault secret at %s", path)
	}
	if s == nil || s.Data == nil {
		return "", errors.Errorf("no secret found in vault at %s", path)
	}

	data := s.Data
	// KV v2 nests the payload one level down under "data".
	if nested, ok := s.Data["data"].(map[string]interface{}); ok {
		data = nested
	}

	value, ok := data[field].(string)
	if !ok || value == "" {
		return "", errors.Errorf("field %q not found in vault secret at %s", field, path)
	}
	return value, nil
}
