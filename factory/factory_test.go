// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `info:
  version: 1.0.0
  description: IKE message decoder configuration
configuration:
  hexDump: true
logger:
  IKE:
    debugLevel: debug
  Util:
    debugLevel: info
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config file failed: %v", err)
	}
	return path
}

func TestInitConfigFactory(t *testing.T) {
	path := writeConfig(t, validConfig)

	if err := InitConfigFactory(path); err != nil {
		t.Fatalf("InitConfigFactory failed: %v", err)
	}

	if IkeConfig.Info == nil || IkeConfig.Info.Version != "1.0.0" {
		t.Errorf("Version not loaded: %+v", IkeConfig.Info)
	}
	if IkeConfig.Configuration == nil || !IkeConfig.Configuration.HexDump {
		t.Errorf("Configuration not loaded: %+v", IkeConfig.Configuration)
	}
	if IkeConfig.Logger == nil || IkeConfig.Logger.IKE == nil {
		t.Fatalf("Logger settings not loaded: %+v", IkeConfig.Logger)
	}
	if IkeConfig.Logger.IKE.DebugLevel != "debug" {
		t.Errorf("Expected IKE debug level 'debug', got %q", IkeConfig.Logger.IKE.DebugLevel)
	}

	if err := CheckConfigVersion(); err != nil {
		t.Errorf("CheckConfigVersion failed: %v", err)
	}
}

func TestInitConfigFactoryMissingFile(t *testing.T) {
	if err := InitConfigFactory(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestCheckConfigVersionMismatch(t *testing.T) {
	path := writeConfig(t, "info:\n  version: 0.9.0\n")

	if err := InitConfigFactory(path); err != nil {
		t.Fatalf("InitConfigFactory failed: %v", err)
	}
	if err := CheckConfigVersion(); err == nil {
		t.Error("Expected error for version mismatch, got nil")
	}
}
