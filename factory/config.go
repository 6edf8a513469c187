// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"github.com/omec-project/util/logger"
)

const (
	IKE_EXPECTED_CONFIG_VERSION = "1.0.0"
)

type Config struct {
	Info          *Info          `yaml:"info"`
	Configuration *Configuration `yaml:"configuration"`
	Logger        *Logger        `yaml:"logger"`
}

type Info struct {
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type Configuration struct {
	// HexDump controls whether decoded messages are dumped byte by byte.
	HexDump bool `yaml:"hexDump,omitempty"`
}

type Logger struct {
	IKE  *logger.LogSetting `yaml:"IKE"`
	Util *logger.LogSetting `yaml:"Util"`
}

func (c *Config) getVersion() string {
	if c.Info != nil && c.Info.Version != "" {
		return c.Info.Version
	}
	return ""
}
