// SPDX-FileCopyrightText: 2026 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Command ikecli decodes an IKEv2 datagram from a hex string or file and
// prints the header fields and the payload chain.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/omec-project/ike/factory"
	"github.com/omec-project/ike/logger"
	"github.com/omec-project/ike/message"
	"github.com/omec-project/ike/util"
	utilLogger "github.com/omec-project/util/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var appLog *zap.SugaredLogger

func init() {
	appLog = logger.AppLog
}

func main() {
	cmd := &cli.Command{
		Name:  "ikecli",
		Usage: "decode an IKEv2 datagram",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "cfg",
				Usage: "ikecli config file",
			},
			&cli.StringFlag{
				Name:  "hex",
				Usage: "datagram as a hex string",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "file containing the datagram as a hex string",
			},
		},
		Action: action,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		appLog.Errorf("ikecli run error: %v", err)
		os.Exit(1)
	}
}

func action(ctx context.Context, c *cli.Command) error {
	defer util.RecoverWithLog(appLog)

	if cfg := c.String("cfg"); cfg != "" {
		if err := initialize(cfg); err != nil {
			logger.CfgLog.Errorf("%+v", err)
			return fmt.Errorf("failed to initialize")
		}
	}

	data, err := inputData(c)
	if err != nil {
		return err
	}

	return decode(data)
}

func initialize(cfg string) error {
	absPath, err := filepath.Abs(cfg)
	if err != nil {
		return err
	}
	if err := factory.InitConfigFactory(absPath); err != nil {
		return err
	}
	if err := factory.CheckConfigVersion(); err != nil {
		return err
	}
	setLogLevel()
	return nil
}

func setLogLevel() {
	cfgLogger := factory.IkeConfig.Logger
	if cfgLogger == nil {
		appLog.Warnln("config without log level setting")
		return
	}
	setModuleLogLevel(cfgLogger.IKE, logger.IKELog, logger.SetLogLevel, "IKE")
	setModuleLogLevel(cfgLogger.Util, utilLogger.UtilLog, utilLogger.SetLogLevel, "Util")
}

func setModuleLogLevel(moduleCfg *utilLogger.LogSetting, logObj *zap.SugaredLogger, setLevel func(zapcore.Level), moduleName string) {
	if moduleCfg == nil || moduleCfg.DebugLevel == "" {
		logObj.Warnf("%s log level not set, default set to [info] level", moduleName)
		setLevel(zap.InfoLevel)
		return
	}
	level, err := zapcore.ParseLevel(moduleCfg.DebugLevel)
	if err != nil {
		logObj.Warnf("%s log level [%s] is invalid, set to [info] level", moduleName, moduleCfg.DebugLevel)
		setLevel(zap.InfoLevel)
		return
	}
	logObj.Infof("%s log level is set to [%s] level", moduleName, level)
	setLevel(level)
}

func inputData(c *cli.Command) ([]byte, error) {
	hexText := c.String("hex")
	if file := c.String("file"); file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		hexText = string(content)
	}
	if hexText == "" {
		return nil, fmt.Errorf("either --hex or --file must be given")
	}

	hexText = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, hexText)

	data, err := hex.DecodeString(hexText)
	if err != nil {
		return nil, fmt.Errorf("input is not valid hex: %w", err)
	}
	return data, nil
}

func decode(data []byte) error {
	localAddr := &net.UDPAddr{IP: net.IPv4zero, Port: 500}
	remoteAddr := &net.UDPAddr{IP: net.IPv4zero, Port: 500}
	packet := message.NewPacket(remoteAddr, localAddr, data)

	msg := message.NewMessageFromPacket(packet, appLog)
	defer msg.Destroy()

	if err := msg.ParseHeader(); err != nil {
		return err
	}

	saID, err := msg.SaID()
	if err != nil {
		return err
	}

	fmt.Printf("exchange type: %s\n", message.ExchangeTypeName(msg.ExchangeType()))
	fmt.Printf("request:       %t\n", msg.IsRequest())
	fmt.Printf("message ID:    %d\n", msg.MessageID())
	fmt.Printf("version:       %d.%d\n", msg.MajorVersion(), msg.MinorVersion())
	fmt.Printf("SA:            %s\n", saID)

	if err := msg.ParseBody(); err != nil {
		return err
	}

	fmt.Printf("payloads:      %d\n", msg.PayloadCount())
	iterator := msg.PayloadIterator()
	for payload, ok := iterator.Next(); ok; payload, ok = iterator.Next() {
		fmt.Printf("  - %s\n", payload.Type())
	}

	if cfg := factory.IkeConfig.Configuration; cfg != nil && cfg.HexDump {
		fmt.Printf("raw:\n%s", hex.Dump(data))
	}

	return nil
}
