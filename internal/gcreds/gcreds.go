// Package gcreds builds Google API client options from service-account settings.
package gcreds

import (
	"encoding/json"
	"errors"

	"google.golang.org/api/option"
)

// ErrNotConfigured is returned when neither a credentials file nor an
// email/key pair is set.
var ErrNotConfigured = errors.New("google credentials not configured")

// Credentials is a service account given either as a JSON key file or as
// the client email plus a PEM private key.
type Credentials struct {
	File        string
	ClientEmail string
	PrivateKey  string
}

type serviceAccount struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	TokenURI    string `json:"token_uri"`
}

// ClientOptions returns the options for a client limited to scopes. The key
// file wins when both forms are set.
func (c Credentials) ClientOptions(scopes ...string) ([]option.ClientOption, error) {
	opts := []option.ClientOption{option.WithScopes(scopes...)}
	switch {
	case c.File != "":
		return append(opts, option.WithCredentialsFile(c.File)), nil
	case c.ClientEmail != "" && c.PrivateKey != "":
		raw, err := json.Marshal(serviceAccount{
			Type:        "service_account",
			ClientEmail: c.ClientEmail,
			PrivateKey:  c.PrivateKey,
			TokenURI:    "https://oauth2.googleapis.com/token",
		})
		if err != nil {
			return nil, err
		}
		return append(opts, option.WithCredentialsJSON(raw)), nil
	default:
		return nil, ErrNotConfigured
	}
}
