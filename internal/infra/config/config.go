// internal/infra/config/config.go
package config

import "os"

// Config holds the environment-variable settings for the whole service.
type Config struct {
	Port                     string
	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// Hosted payment page service base URL.
	// e.g. https://pay.myfootfirst.com or http://localhost:5000
	PaymentBaseURL string

	// SendGrid: the key can come straight from env or, when empty, be
	// resolved from Secret Manager using SendGridSecretName.
	SendGridAPIKey     string
	SendGridSecretName string
	SendGridFrom       string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "myfootfirst-app")

	return &Config{
		Port:                     getenvDefault("PORT", "8080"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		PaymentBaseURL: os.Getenv("PAYMENT_BASE_URL"),

		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "sendgrid-api-key"),
		SendGridFrom:       getenvDefault("SENDGRID_FROM", "orders@myfootfirst.com"),
	}
}

// GetFirestoreProjectID returns the Firestore/GCP project id.
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// GetFirebaseProjectID returns the project id used for Firebase Auth.
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
