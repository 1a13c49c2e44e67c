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
	"fmt"

	raven "github.com/getsentry/raven-go"
	"github.com/spf13/cobra"

	"github.com/66f94eae/bark-go/config"
	"github.com/66f94eae/bark-go/util"
)

// tokenCmd mints a provider token and prints the persistable
// "issuedAt.bearer" pair, so callers can carry it over to a later run.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "mints a provider token and prints the persistable pair",
	Long:  `mints a provider token and prints the persistable pair`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, vConfig, err := config.NewConfigAndViper(cfgFile)
		if err != nil {
			panic(err)
		}

		sentryURL := vConfig.GetString("sentry.url")
		if sentryURL != "" {
			raven.SetDSN(sentryURL)
		}

		b, err := startBark(debug, json, production, vConfig, cfg)
		if err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{
				"version": util.Version,
				"cmd":     "token",
			})
			panic(err)
		}

		if _, _, err := b.ForceRefreshToken(); err != nil {
			raven.CaptureErrorAndWait(err, map[string]string{
				"version": util.Version,
				"cmd":     "token",
			})
			panic(err)
		}
		fmt.Println(b.ExportToken())
	},
}

func init() {
	RootCmd.AddCommand(tokenCmd)
}
