package main

import "testing"

func TestParseFlagsVersionExits(t *testing.T) {
	_, exit, code := parseFlags([]string{"--version"})
	if !exit || code != 0 {
		t.Fatalf("expected clean exit 0, got exit=%v code=%d", exit, code)
	}
}

func TestParseFlagsHelpExits(t *testing.T) {
	_, exit, code := parseFlags([]string{"--help"})
	if !exit || code != 0 {
		t.Fatalf("expected clean exit 0, got exit=%v code=%d", exit, code)
	}
}

func TestParseFlagsMissingModuleExits(t *testing.T) {
	_, exit, code := parseFlags([]string{"--fixture", "x.json"})
	if !exit || code != 2 {
		t.Fatalf("expected usage exit 2, got exit=%v code=%d", exit, code)
	}
}

func TestParseFlagsMissingFixtureExits(t *testing.T) {
	_, exit, code := parseFlags([]string{"module.so"})
	if !exit || code != 2 {
		t.Fatalf("expected usage exit 2, got exit=%v code=%d", exit, code)
	}
}

func TestParseFlagsOK(t *testing.T) {
	cfg, exit, _ := parseFlags([]string{"--fixture", "x.json", "module.so"})
	if exit {
		t.Fatal("did not expect exit")
	}
	if cfg.modulePath != "module.so" || cfg.fixturePath != "x.json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
