package usecase

import "context"

// AuthClient is the identity-provider surface the usecases need.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	RevokeSessions(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
}

// Uploader stores raw bytes in the object storage bucket and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}

// Mailer invokes the outbound auth-email function. All sends are best-effort.
type Mailer interface {
	SendRegistrationEmail(ctx context.Context, email, name string) error
	SendLoginEmail(ctx context.Context, email, name string) error
}
