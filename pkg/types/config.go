package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	RedisURL        string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// S3 storage for document scans
	StorageBucketName string `envconfig:"STORAGE_BUCKET_NAME" default:"bienvenue-documents"`
	StorageBaseURL    string `envconfig:"STORAGE_BASE_URL"`

	// The original app hands out the completion reward whether or not the
	// module was ever unlocked; flip this on to require a prior unlock.
	ProgressionRequireUnlock bool `envconfig:"PROGRESSION_REQUIRE_UNLOCK" default:"false"`

	// Guest sessions are device-scoped and expire server-side.
	GuestSessionTTLHours uint `envconfig:"GUEST_SESSION_TTL_HOURS" default:"720"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
