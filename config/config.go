package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the client service. Every field has
// an environment override and a development fallback.
type Config struct {
	// APIBaseURL is the root URL of the remote video service.
	APIBaseURL string
	// ListenAddr is the address the HTTP surface binds to.
	ListenAddr string
	// TranscriptCachePath is the JSON file the transcript collection is
	// persisted to between runs.
	TranscriptCachePath string
	// RequestTimeout bounds every outbound call to the remote video service.
	RequestTimeout time.Duration
}

const (
	defaultAPIBaseURL = "https://vidnote.onrender.com"
	defaultListenAddr = ":8080"
	defaultCachePath  = "data/transcripts.json"
	defaultTimeout    = 30 * time.Second
)

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present but is not required.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:          getEnv("VIDNOTE_API_URL", defaultAPIBaseURL),
		ListenAddr:          getEnv("VIDNOTE_LISTEN_ADDR", defaultListenAddr),
		TranscriptCachePath: getEnv("VIDNOTE_CACHE_FILE", defaultCachePath),
		RequestTimeout:      getEnvDuration("VIDNOTE_REQUEST_TIMEOUT_SECONDS", defaultTimeout),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}
