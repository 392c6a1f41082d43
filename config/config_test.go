package config

import (
	"strings"
	"testing"
)

func TestValidateReportsAllMissingKeys(t *testing.T) {
	err := Config{}.Validate()
	if err == nil {
		t.Fatal("expected error for empty config")
	}
	for _, key := range []string{"MONGO_URI", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestValidateEventsBackendRequirements(t *testing.T) {
	base := Config{MongoURI: "mongodb://x", JWTAccessSecret: "a", JWTRefreshSecret: "r"}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	amqp := base
	amqp.EventsBackend = "amqp"
	if err := amqp.Validate(); err == nil || !strings.Contains(err.Error(), "AMQP_URL") {
		t.Errorf("expected AMQP_URL to be required, got %v", err)
	}

	asynq := base
	asynq.EventsBackend = "asynq"
	if err := asynq.Validate(); err == nil || !strings.Contains(err.Error(), "REDIS_ADDR") {
		t.Errorf("expected REDIS_ADDR to be required, got %v", err)
	}
}

func TestAllowedOrigins(t *testing.T) {
	c := Config{ClientURLs: " http://a.test, ,http://b.test"}
	got := c.AllowedOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", got)
	}
}
