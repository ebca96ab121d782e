package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"rewear/pkg/config"
	"rewear/pkg/logger"
)

// NewFirestoreClient boots a Firebase app for the configured project and returns its Firestore client.
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	opts, source, err := credentialOptions(cfg)
	if err != nil {
		return nil, err
	}
	logger.L().Info("Initializing Firebase", zap.String("project", cfg.FirebaseProject), zap.String("credentials", source))

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// credentialOptions prefers inline JSON, then a key file, then application default credentials.
func credentialOptions(cfg *config.Config) ([]option.ClientOption, string, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))}, "environment", nil
	}

	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err != nil {
			return nil, "", fmt.Errorf("service account file %s: %w", cfg.FirebaseServiceAccountPath, err)
		}
		return []option.ClientOption{option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)}, "file", nil
	}

	return nil, "application-default", nil
}
