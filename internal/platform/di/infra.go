// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "myfootfirst/internal/infra/config"
	firestoreinfra "myfootfirst/internal/infra/firestore"
)

// Infra is the shared runtime infrastructure.
//   - owns external clients (Firestore / FirebaseAuth / SecretManager)
//   - owns env/config-resolved runtime settings (payment base URL,
//     mail sender, resolved SendGrid key)
//
// Infra must NOT depend on routers, handlers or usecases.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// Runtime settings (resolved once)
	PaymentBaseURL string
	SendGridAPIKey string
	SendGridFrom   string
}

// NewInfra initializes shared infra.
// Firestore is strict (return error). Firebase/Auth and SecretManager
// are best-effort (warn + continue): without auth every /shop route
// answers 503, but /healthz keeps Cloud Run alive.
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:         cfg,
		ProjectID:      projectID,
		PaymentBaseURL: strings.TrimSpace(cfg.PaymentBaseURL),
		SendGridFrom:   strings.TrimSpace(cfg.SendGridFrom),
	}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di.infra] Using credentials file for GCP clients")
	} else {
		log.Printf("[di.infra] Using Application Default Credentials (no credentials file configured)")
	}

	// 1) Firestore (strict)
	fsw, err := firestoreinfra.NewClient(ctx, projectID, credFile)
	if err != nil {
		return nil, err
	}
	inf.Firestore = fsw

	// 2) Firebase App/Auth (best-effort)
	{
		fbCfg := &firebase.Config{ProjectID: cfg.GetFirebaseProjectID()}
		fbApp, err := firebase.NewApp(ctx, fbCfg, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[di.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[di.infra] Firebase Auth initialized project=%s", cfg.GetFirebaseProjectID())
			}
		}
	}

	// 3) Secret Manager (best-effort; only needed for the SendGrid key)
	{
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di.infra] WARN: secretmanager.NewClient failed: %v (mail may be disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
	}

	inf.SendGridAPIKey = inf.resolveSendGridKey(ctx)
	if inf.SendGridAPIKey == "" {
		log.Printf("[di.infra] WARN: SendGrid key not resolved; order confirmation mail disabled")
	}

	return inf, nil
}

// resolveSendGridKey prefers the env var and falls back to Secret
// Manager (projects/<id>/secrets/<name>/versions/latest).
func (inf *Infra) resolveSendGridKey(ctx context.Context) string {
	if key := strings.TrimSpace(inf.Config.SendGridAPIKey); key != "" {
		return key
	}
	if inf.SecretManager == nil {
		return ""
	}

	secretName := strings.TrimSpace(inf.Config.SendGridSecretName)
	if secretName == "" {
		return ""
	}

	name := "projects/" + inf.ProjectID + "/secrets/" + secretName + "/versions/latest"
	resp, err := inf.SecretManager.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		log.Printf("[di.infra] WARN: AccessSecretVersion failed (%s): %v", name, err)
		return ""
	}
	if resp == nil || resp.Payload == nil {
		return ""
	}
	return strings.TrimSpace(string(resp.Payload.Data))
}

// FirestoreClient is a convenience accessor for repositories.
func (inf *Infra) FirestoreClient() *firestore.Client {
	if inf == nil || inf.Firestore == nil {
		return nil
	}
	return inf.Firestore.Client
}

// Close releases owned clients.
func (inf *Infra) Close() error {
	if inf == nil {
		return nil
	}
	var first error
	if inf.SecretManager != nil {
		if err := inf.SecretManager.Close(); err != nil && first == nil {
			first = err
		}
		inf.SecretManager = nil
	}
	if inf.Firestore != nil {
		if err := inf.Firestore.Close(); err != nil && first == nil {
			first = err
		}
		inf.Firestore = nil
	}
	return first
}
