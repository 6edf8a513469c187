// SPDX-FileCopyrightText: 2026 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"fmt"
	"os"

	"github.com/omec-project/ike/logger"
	"gopkg.in/yaml.v2"
)

var IkeConfig Config

func InitConfigFactory(f string) error {
	content, err := os.ReadFile(f)
	if err != nil {
		return err
	}

	IkeConfig = Config{}
	if err = yaml.Unmarshal(content, &IkeConfig); err != nil {
		return err
	}

	return nil
}

func CheckConfigVersion() error {
	currentVersion := IkeConfig.getVersion()

	if currentVersion != IKE_EXPECTED_CONFIG_VERSION {
		return fmt.Errorf("config version is [%s], but expected is [%s]",
			currentVersion, IKE_EXPECTED_CONFIG_VERSION)
	}

	logger.CfgLog.Infof("config version [%s]", currentVersion)

	return nil
}
