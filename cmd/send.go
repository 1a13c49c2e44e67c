/*
 * Copyright (c) 2025 66f94eae
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package cmd

import (
	"context"
	"os"

	raven "github.com/getsentry/raven-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/66f94eae/bark-go/bark"
	"github.com/66f94eae/bark-go/config"
	"github.com/66f94eae/bark-go/msg"
	"github.com/66f94eae/bark-go/util"
)

var title string
var body string
var level string
var badge int
var autoCopy int
var copyText string
var sound string
var icon string
var group string
var isArchive int
var linkURL string
var iv string
var encType string
var encMode string
var encKey string

func startBark(debug, json, production bool, vConfig *viper.Viper, cfg *config.Config) (*bark.Bark, error) {
	var log = logrus.New()
	if json {
		log.Formatter = new(logrus.JSONFormatter)
	}
	log.Level = util.ParseLogLevel(logLevel)
	if debug {
		log.Level = logrus.DebugLevel
	}
	return bark.NewBark(production, vConfig, cfg, log, nil)
}

func buildMessage(cmd *cobra.Command) (*msg.Msg, error) {
	var builder *msg.Builder
	if title == "" {
		builder = msg.WithBody(body)
	} else {
		builder = msg.New(title, body)
	}

	flags := cmd.Flags()
	if flags.Changed("level") {
		builder.Level(level)
	}
	if flags.Changed("badge") {
		builder.Badge(badge)
	}
	if flags.Changed("auto-copy") {
		builder.AutoCopy(autoCopy)
	}
	if flags.Changed("copy") {
		builder.Copy(copyText)
	}
	if flags.Changed("sound") {
		builder.Sound(sound)
	}
	if flags.Changed("icon") {
		builder.Icon(icon)
	}
	if flags.Changed("group") {
		builder.Group(group)
	}
	if flags.Changed("archive") {
		builder.Archive(isArchive)
	}
	if flags.Changed("url") {
		builder.URL(linkURL)
	}
	if flags.Changed("iv") {
		builder.IV(iv)
	}
	if flags.Changed("enc-type") {
		builder.EncType(encType)
	}
	if flags.Changed("enc-mode") {
		builder.EncMode(encMode)
	}
	if flags.Changed("key") {
		builder.Key(encKey)
	}
	return builder.Build()
}

// sendCmd delivers one notification to the given devices (or the configured
// device list when no args are passed).
var sendCmd = &cobra.Command{
	Use:   "send [devices]",
	Short: "sends a notification to the given devices",
	Long:  `sends a notification to the given devices`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, vConfig, err := config.NewConfigAndViper(cfgFile)
		if err != nil {
			panic(err)
		}

		sentryURL := vConfig.GetString("sentry.url")
		if sentryURL != "" {
			raven.SetDSN(sentryURL)
		}

		message, err := buildMessage(cmd)
		if err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{
				"version": util.Version,
				"cmd":     "send",
			})
			panic(err)
		}

		b, err := startBark(debug, json, production, vConfig, cfg)
		if err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{
				"version": util.Version,
				"cmd":     "send",
			})
			panic(err)
		}

		devices := args
		if len(devices) == 0 {
			devices = cfg.GetDevicesArray()
		}

		outcome, err := b.Send(context.Background(), message, devices...)
		if err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{
				"version": util.Version,
				"cmd":     "send",
			})
			panic(err)
		}
		if outcome.Failed() {
			for device, reason := range outcome {
				b.Logger.WithFields(logrus.Fields{
					"device": device,
					"reason": reason,
				}).Error("notification failed")
			}
			os.Exit(1)
		}
		b.Logger.WithField("devices", len(devices)).Info("all notifications delivered")
	},
}

func init() {
	sendCmd.Flags().StringVarP(&title, "title", "t", "", "notification title")
	sendCmd.Flags().StringVarP(&body, "body", "b", "", "notification body")
	sendCmd.Flags().StringVarP(&level, "level", "l", "active", "interruption level: active, timeSensitive or passive")
	sendCmd.Flags().IntVar(&badge, "badge", 0, "badge count")
	sendCmd.Flags().IntVar(&autoCopy, "auto-copy", 0, "auto copy flag")
	sendCmd.Flags().StringVar(&copyText, "copy", "", "text copied instead of the whole body")
	sendCmd.Flags().StringVar(&sound, "sound", "", "ringtone")
	sendCmd.Flags().StringVar(&icon, "icon", "", "custom icon url")
	sendCmd.Flags().StringVar(&group, "group", "", "notification group")
	sendCmd.Flags().IntVar(&isArchive, "archive", 0, "archive flag")
	sendCmd.Flags().StringVar(&linkURL, "url", "", "url opened when the notification is tapped")
	sendCmd.Flags().StringVar(&iv, "iv", "", "initialization vector")
	sendCmd.Flags().StringVar(&encType, "enc-type", "", "cipher family: aes128, aes192 or aes256")
	sendCmd.Flags().StringVar(&encMode, "enc-mode", "", "block mode: cbc, ecb or gcm")
	sendCmd.Flags().StringVar(&encKey, "key", "", "encryption key shared with the app")
	RootCmd.AddCommand(sendCmd)
}
