package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Object store kinds accepted by OBJECT_STORE.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreLocal  = "local"
	StoreS3     = "s3"
	StoreMinio  = "minio"
)

// Credential sources accepted by CREDENTIAL_SOURCE.
const (
	CredentialsEnv = "env"
	CredentialsDB  = "db"
)

// Config holds application configuration.
type Config struct {
	Port             string
	Env              string
	CORSAllowOrigin  []string
	CredentialSource string

	OpenAIAPIKey string
	LLMModel     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	Minio           MinioConfig

	DatabaseURL string

	ChromeBin     string
	RenderTimeout time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// MinioConfig addresses an S3-compatible server.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	source := normalizeCredentialSource(getEnv("CREDENTIAL_SOURCE", CredentialsEnv))

	if source == CredentialsDB && dbURL == "" {
		log.Printf("CREDENTIAL_SOURCE=db requires DATABASE_URL")
	}

	return Config{
		Port:             getEnv("PORT", "8080"),
		Env:              env,
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		CredentialSource: source,

		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		LLMModel:     getEnv("LLM_MODEL", "gpt-5-nano"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", StoreNone)),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "resumegen"),
			UseSSL:    getBool("MINIO_USE_SSL", false),
		},

		DatabaseURL: dbURL,

		ChromeBin:     getEnv("CHROME_BIN", ""),
		RenderTimeout: getSeconds("RENDER_TIMEOUT_SECONDS", 30*time.Second),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 5),
	}
}

// IsDevLike reports whether the environment tolerates missing infrastructure.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q; using %d", key, raw, def)
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid number %q; using %g", key, raw, def)
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool %q; using %t", key, raw, def)
		return def
	}
	return v
}

func getSeconds(key string, def time.Duration) time.Duration {
	secs := getInt(key, -1)
	if secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case StoreMemory, StoreLocal, StoreS3, StoreMinio:
		return v
	default:
		return StoreNone
	}
}

func normalizeCredentialSource(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), CredentialsDB) {
		return CredentialsDB
	}
	return CredentialsEnv
}
