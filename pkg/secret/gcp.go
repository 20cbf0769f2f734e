package secret

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/pkg/errors"
)

// resolveGCP fetches the latest version of a secret from Google Secret
// Manager. The project comes from GOOGLE_CLOUD_PROJECT, the same
// environment the migration jobs already run with.
func resolveGCP(ctx context.Context, name string) (string, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return "", errors.New("GOOGLE_CLOUD_PROJECT environment variable is not set")
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to create secret manager client")
	}
	defer client.Close()

	resp, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to access secret %s", name)
	}
	return string(resp.GetPayload().GetData()), nil
}
