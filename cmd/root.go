/*
Copyright © 2023 Chris Collins 'collins.christopher@gmail.com'

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/config"
	"github.com/clcollins/hero/pkg/launcher"
	"github.com/clcollins/hero/pkg/metrics"
	"github.com/clcollins/hero/pkg/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

const cfgFile = "hero.yaml"
const cfgFilePath = ".config/hero/"

var debug bool
var metricsAddr string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hero",
	Short: "TUI for browsing cases from NGOs that need a hero",
	Long: `'hero' is a TUI application for browsing the cases
NGOs publish when they need help.  Cases are loaded page by
page as you scroll, and any case can be opened for details
or in the browser.`,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.SetLevel(log.DebugLevel)
		}
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			for k, v := range viper.GetViper().AllSettings() {
				if strings.Contains(k, "token") {
					v = "*****"
				}
				log.Debug("Found key", k, v)
			}
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		opts, m := buildOptions(viper.GetViper())

		g, gctx := errgroup.WithContext(ctx)
		if metricsAddr != "" {
			g.Go(func() error {
				return m.Serve(gctx, metricsAddr)
			})
		}

		p := tea.NewProgram(tui.InitialModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err := p.Run()
		cancel()

		if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
			log.Error("rootCmd", "metrics", werr)
		}
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("hero: %w", err)
		}
		return nil
	},
}

// buildOptions turns the loaded config into the TUI's collaborators. A bad
// config is not fatal: it is handed to the TUI, which shows it in the
// error view.
func buildOptions(v *viper.Viper) (tui.Options, *metrics.Metrics) {
	opts := tui.Options{Debug: debug}

	var m *metrics.Metrics
	if metricsAddr != "" {
		m = metrics.New()
		opts.Metrics = m
	}

	c, err := config.Load(v)
	if err != nil {
		opts.Err = err
		return opts, m
	}
	opts.SourceName = c.Source

	opts.Source, err = c.NewSource()
	if err != nil {
		opts.Err = err
		return opts, m
	}

	if c.DetailURL != "" {
		l, err := launcher.NewBrowserLauncher(c.Browser, c.DetailURL)
		if err != nil {
			log.Warn("buildOptions", "msg", "browser launcher disabled", "error", err)
		}
		opts.Launcher = l
	}

	return opts, m
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debugging output")

	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, eg: localhost:9090")
	rootCmd.Flags().StringP("source", "s", config.SourceREST, "Incident source: rest or pagerduty")
	rootCmd.Flags().StringP("api-url", "u", config.DefaultAPIURL, "Base URL of the incidents API")
	rootCmd.Flags().Int("page-size", 0, "Incidents per page for sources that take a limit")

	cobra.CheckErr(viper.BindPFlag("source", rootCmd.Flags().Lookup("source")))
	cobra.CheckErr(viper.BindPFlag("api_url", rootCmd.Flags().Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("page_size", rootCmd.Flags().Lookup("page-size")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Find home directory.
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	config.SetDefaults(viper.GetViper())

	// Search config in home directory with name "hero.yaml"
	viper.AddConfigPath(home + "/" + cfgFilePath)
	viper.SetConfigName(cfgFile)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("hero")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug("initConfig", "msg", "config file not found", "error", err)
		} else {
			fmt.Fprintln(os.Stderr, "Config file error: "+err.Error())
		}
	}
}
