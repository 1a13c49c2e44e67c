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

package bark

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/66f94eae/bark-go/apns"
	"github.com/66f94eae/bark-go/config"
	"github.com/66f94eae/bark-go/interfaces"
	"github.com/66f94eae/bark-go/msg"
	"github.com/66f94eae/bark-go/token"
)

// Bark wires the token manager and the dispatcher from configuration and
// sends notifications to the configured app topic.
type Bark struct {
	Config         *viper.Viper
	Logger         *logrus.Logger
	StatsReporters []interfaces.StatsReporter
	Dispatcher     *apns.Dispatcher
	Topic          string
	IsProduction   bool
	tokens         *token.Manager
}

// NewBark returns a Bark configured from cfg. The auth key file is read and
// parsed here; a missing or malformed key means no notification can ever be
// signed, so it fails the constructor.
func NewBark(
	isProduction bool,
	vConfig *viper.Viper,
	cfg *config.Config,
	logger *logrus.Logger,
	statsdClientOrNil interfaces.StatsDClient,
	transportOrNil ...interfaces.Transport,
) (*Bark, error) {
	return newBark(isProduction, vConfig, cfg, logger, nil, statsdClientOrNil, transportOrNil...)
}

// Restore is NewBark for callers that persisted the (issuedAt, bearer) token
// pair of an earlier run. An expired pair is discarded with a warning.
func Restore(
	isProduction bool,
	vConfig *viper.Viper,
	cfg *config.Config,
	logger *logrus.Logger,
	issuedAt int64,
	bearer string,
	statsdClientOrNil interfaces.StatsDClient,
	transportOrNil ...interfaces.Transport,
) (*Bark, error) {
	pair := &tokenPair{issuedAt: issuedAt, bearer: bearer}
	return newBark(isProduction, vConfig, cfg, logger, pair, statsdClientOrNil, transportOrNil...)
}

type tokenPair struct {
	issuedAt int64
	bearer   string
}

func newBark(
	isProduction bool,
	vConfig *viper.Viper,
	cfg *config.Config,
	logger *logrus.Logger,
	pair *tokenPair,
	statsdClientOrNil interfaces.StatsDClient,
	transportOrNil ...interfaces.Transport,
) (*Bark, error) {
	b := &Bark{
		Config:       vConfig,
		Logger:       logger,
		Topic:        cfg.Apns.Topic,
		IsProduction: isProduction,
	}
	if err := b.configure(cfg, pair, statsdClientOrNil, transportOrNil...); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bark) configure(cfg *config.Config, pair *tokenPair, statsdClientOrNil interfaces.StatsDClient, transportOrNil ...interfaces.Transport) error {
	l := b.Logger.WithFields(logrus.Fields{
		"source": "Bark",
		"method": "configure",
	})
	b.loadConfigurationDefaults()

	if err := b.configureStatsReporters(statsdClientOrNil); err != nil {
		return err
	}

	authKey, err := os.ReadFile(cfg.Apns.AuthKeyPath)
	if err != nil {
		return fmt.Errorf("error reading auth key from %s: %w", cfg.Apns.AuthKeyPath, err)
	}
	if pair != nil {
		b.tokens, err = token.Restore(authKey, cfg.Apns.KeyID, cfg.Apns.TeamID, pair.issuedAt, pair.bearer, b.Logger)
	} else {
		b.tokens, err = token.NewManager(authKey, cfg.Apns.KeyID, cfg.Apns.TeamID, b.Logger)
	}
	if err != nil {
		return err
	}

	b.Dispatcher = apns.NewDispatcher(b.IsProduction, b.Config, b.Logger, b.StatsReporters, transportOrNil...)
	l.WithField("topic", b.Topic).Info("bark configured")
	return nil
}

func (b *Bark) loadConfigurationDefaults() {
	b.Config.SetDefault("stats.reporters", []string{})
}

func (b *Bark) configureStatsReporters(clientOrNil interfaces.StatsDClient) error {
	reporters, err := configureStatsReporters(b.Config, b.Logger, clientOrNil)
	if err != nil {
		return err
	}
	b.StatsReporters = reporters
	return nil
}

// Send delivers the message to every device using the configured topic. See
// Dispatcher.Send for the outcome contract.
func (b *Bark) Send(ctx context.Context, message *msg.Msg, devices ...string) (apns.Outcome, error) {
	bearer, err := b.tokens.Bearer()
	if err != nil {
		return nil, err
	}
	return b.Dispatcher.Send(ctx, message, b.Topic, bearer, devices)
}

// Token returns the cached (issuedAt, bearer) pair without minting.
func (b *Bark) Token() (int64, string) {
	return b.tokens.Cached()
}

// ForceRefreshToken mints a new bearer regardless of the cached one's
// validity and returns the new pair.
func (b *Bark) ForceRefreshToken() (int64, string, error) {
	if _, err := b.tokens.ForceRefresh(); err != nil {
		return 0, "", err
	}
	issuedAt, bearer := b.tokens.Cached()
	return issuedAt, bearer, nil
}

// ExportToken returns the cached pair in its persistable "issuedAt.bearer"
// form.
func (b *Bark) ExportToken() string {
	return b.tokens.Export()
}

// Cleanup closes the stats reporters.
func (b *Bark) Cleanup() error {
	for _, statsReporter := range b.StatsReporters {
		if err := statsReporter.Cleanup(); err != nil {
			return err
		}
	}
	return nil
}
