package config

// StorageConfig contains S3-compatible object storage configuration for
// product and banner images.
type StorageConfig struct {
	Bucket    string `env:"BUCKET"     envDefault:"nextgen-portal-media"`
	Region    string `env:"REGION"     envDefault:"ap-south-1"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`

	// Endpoint overrides the S3 endpoint (MinIO or localstack in development).
	Endpoint string `env:"ENDPOINT"`

	// PublicBaseURL is prepended to object keys when building image URLs.
	// Leave empty to use the bucket's standard S3 URL.
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}
