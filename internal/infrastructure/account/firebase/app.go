package firebase

import (
	"context"
	"encoding/base64"
	"strings"

	firebasesdk "firebase.google.com/go/v4"
	crerr "github.com/cockroachdb/errors"
	"google.golang.org/api/option"
)

type AppConfig struct {
	// CredentialsB64 is a base64 encoded service account JSON. When empty the
	// SDK falls back to application default credentials.
	CredentialsB64 string
	ProjectID      string
}

func NewApp(ctx context.Context, cfg AppConfig) (*firebasesdk.App, error) {
	var opts []option.ClientOption
	if encoded := strings.TrimSpace(cfg.CredentialsB64); encoded != "" {
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, crerr.Wrap(err, "decode FIREBASE_CREDENTIALS_B64")
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	}

	var sdkCfg *firebasesdk.Config
	if projectID := strings.TrimSpace(cfg.ProjectID); projectID != "" {
		sdkCfg = &firebasesdk.Config{ProjectID: projectID}
	}

	app, err := firebasesdk.NewApp(ctx, sdkCfg, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "initialize firebase app")
	}
	return app, nil
}
