package config

import "testing"

func TestLoadBatchSizeDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Session.BatchComplexFirst != 3 || cfg.Session.BatchComplexNext != 2 {
		t.Errorf("complex batch = %d/%d, want 3/2",
			cfg.Session.BatchComplexFirst, cfg.Session.BatchComplexNext)
	}
	if cfg.Session.BatchDefaultFirst != 5 || cfg.Session.BatchDefaultNext != 3 {
		t.Errorf("default batch = %d/%d, want 5/3",
			cfg.Session.BatchDefaultFirst, cfg.Session.BatchDefaultNext)
	}
}

func TestLoadBatchSizesFromEnv(t *testing.T) {
	t.Setenv("SESSION_BATCH_COMPLEX_FIRST", "4")
	t.Setenv("SESSION_BATCH_DEFAULT_NEXT", "2")

	cfg := Load()

	if cfg.Session.BatchComplexFirst != 4 {
		t.Errorf("BatchComplexFirst = %d, want 4", cfg.Session.BatchComplexFirst)
	}
	if cfg.Session.BatchDefaultNext != 2 {
		t.Errorf("BatchDefaultNext = %d, want 2", cfg.Session.BatchDefaultNext)
	}
	// Untouched keys keep their defaults.
	if cfg.Session.BatchComplexNext != 2 {
		t.Errorf("BatchComplexNext = %d, want default 2", cfg.Session.BatchComplexNext)
	}
}
