package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("testdata/nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("default port = %s", cfg.Server.Port)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("default backend = %s", cfg.Storage.Backend)
	}
	if cfg.Storage.DataDir != "./data" {
		t.Errorf("default data dir = %s", cfg.Storage.DataDir)
	}
	if cfg.SheetsEnabled() {
		t.Error("sheets should be disabled by default")
	}
}

func TestLoadMongoBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMongo)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DB_NAME", "duckfarm-test")

	cfg, err := Load("testdata/nonexistent.env")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MongoDB.DBName != "duckfarm-test" {
		t.Errorf("db name = %s", cfg.MongoDB.DBName)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{name: "unknown backend", mut: func(c *Config) { c.Storage.Backend = "redis" }},
		{name: "mongo without uri", mut: func(c *Config) {
			c.Storage.Backend = BackendMongo
			c.MongoDB.URI = ""
		}},
		{name: "file without data dir", mut: func(c *Config) { c.Storage.DataDir = "" }},
		{name: "empty port", mut: func(c *Config) { c.Server.Port = "" }},
		{name: "sheets credentials without spreadsheet", mut: func(c *Config) {
			c.Sheets.CredentialsPath = "/tmp/creds.json"
		}},
		{name: "empty autosave schedule", mut: func(c *Config) { c.Scheduler.AutosaveCron = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{
				Server:    ServerConfig{Port: "8080"},
				Storage:   StorageConfig{Backend: BackendFile, DataDir: "./data"},
				MongoDB:   MongoDBConfig{DBName: "duckfarm"},
				Scheduler: SchedulerConfig{AutosaveCron: "*/5 * * * *"},
			}
			tc.mut(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
