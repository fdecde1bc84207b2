package main

import (
	"testing"
)

// TestParseFlags_DefaultOptions はデフォルトオプション解析をテスト
func TestParseFlags_DefaultOptions(t *testing.T) {
	opts, err := parseFlags([]string{"serve"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Transport != defaultTransport {
		t.Errorf("expected transport %s, got %s", defaultTransport, opts.Transport)
	}
	if opts.Host != "" {
		t.Errorf("expected empty host (config default applies), got %s", opts.Host)
	}
	if opts.Port != 0 {
		t.Errorf("expected port 0 (config default applies), got %d", opts.Port)
	}
}

// TestParseFlags_NoArgs は引数なし（serve省略）をテスト
func TestParseFlags_NoArgs(t *testing.T) {
	opts, err := parseFlags([]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Transport != defaultTransport {
		t.Errorf("expected transport %s, got %s", defaultTransport, opts.Transport)
	}
}

// TestParseFlags_TransportStdio はtransport=stdioオプションをテスト
func TestParseFlags_TransportStdio(t *testing.T) {
	opts, err := parseFlags([]string{"serve", "--transport", "stdio"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Transport != "stdio" {
		t.Errorf("expected transport stdio, got %s", opts.Transport)
	}
}

// TestParseFlags_HostPortOptions は--host, --portオプションをテスト
func TestParseFlags_HostPortOptions(t *testing.T) {
	opts, err := parseFlags([]string{"serve", "--host", "0.0.0.0", "--port", "9999"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Host != "0.0.0.0" {
		t.Errorf("expected host 0.0.0.0, got %s", opts.Host)
	}
	if opts.Port != 9999 {
		t.Errorf("expected port 9999, got %d", opts.Port)
	}
}

// TestParseFlags_ShortOptions は短縮オプションをテスト
func TestParseFlags_ShortOptions(t *testing.T) {
	opts, err := parseFlags([]string{"serve", "-t", "stdio", "-p", "9999", "-c", "conf.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if opts.Transport != "stdio" {
		t.Errorf("expected transport stdio, got %s", opts.Transport)
	}
	if opts.Port != 9999 {
		t.Errorf("expected port 9999, got %d", opts.Port)
	}
	if opts.ConfigPath != "conf.yaml" {
		t.Errorf("expected config path conf.yaml, got %s", opts.ConfigPath)
	}
}

// TestParseFlags_InvalidTransport は不正なtransportをテスト
func TestParseFlags_InvalidTransport(t *testing.T) {
	if _, err := parseFlags([]string{"serve", "-t", "grpc"}); err == nil {
		t.Error("expected error for invalid transport, got nil")
	}
}

// TestParseFlags_InvalidPort は不正なポートをテスト
func TestParseFlags_InvalidPort(t *testing.T) {
	if _, err := parseFlags([]string{"serve", "-p", "99999"}); err == nil {
		t.Error("expected error for invalid port, got nil")
	}
}

// TestParseFlags_UnknownSubcommand は不正なサブコマンドをテスト
func TestParseFlags_UnknownSubcommand(t *testing.T) {
	if _, err := parseFlags([]string{"destroy"}); err == nil {
		t.Error("expected error for unknown subcommand, got nil")
	}
}
