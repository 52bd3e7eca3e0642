// README: Config loader with env defaults for HTTP, artifact store, and timezone.
package config

import "os"

type Config struct {
	HTTP struct {
		Addr string
	}
	Artifact struct {
		// Backend is "file" or "redis".
		Backend string
		Path    string
		Bucket  string
		Key     string
	}
	Redis struct {
		Addr string
	}
	Timezone string
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FARECAST_HTTP_ADDR", ":8080")
	cfg.Artifact.Backend = envOrDefault("FARECAST_ARTIFACT_BACKEND", "file")
	cfg.Artifact.Path = envOrDefault("FARECAST_ARTIFACT_PATH", "model.json")
	cfg.Artifact.Bucket = envOrDefault("FARECAST_ARTIFACT_BUCKET", "farecast-models")
	cfg.Artifact.Key = envOrDefault("FARECAST_ARTIFACT_KEY", "models/taxifare/model.json")
	cfg.Redis.Addr = envOrDefault("FARECAST_REDIS_ADDR", "localhost:6379")
	cfg.Timezone = envOrDefault("FARECAST_TZ", "UTC")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
