package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// FirestoreCredentials carries the credential material for the Firestore
// project. CredentialsFile takes precedence; otherwise ClientEmail and
// PrivateKey are assembled into an in-memory service-account key. With
// neither set, Application Default Credentials are used.
type FirestoreCredentials struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
}

// NewFirestoreClient creates a Firestore client. The caller owns the client
// and must Close it on shutdown.
func NewFirestoreClient(ctx context.Context, creds FirestoreCredentials) (*firestore.Client, error) {
	if creds.ProjectID == "" {
		return nil, fmt.Errorf("firestore project id is required")
	}

	var opts []option.ClientOption
	switch {
	case creds.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(creds.CredentialsFile))
	case creds.ClientEmail != "" && creds.PrivateKey != "":
		key, err := serviceAccountJSON(creds)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(key))
	}

	client, err := firestore.NewClient(ctx, creds.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// serviceAccountJSON builds a service-account key document from the inline
// credential fields. Private keys delivered through environment variables
// arrive with literal "\n" sequences, which must become real newlines.
func serviceAccountJSON(creds FirestoreCredentials) ([]byte, error) {
	key, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   creds.ProjectID,
		"client_email": creds.ClientEmail,
		"private_key":  strings.ReplaceAll(creds.PrivateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble service account key: %w", err)
	}
	return key, nil
}
