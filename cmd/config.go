package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/config"
	"github.com/clcollins/hero/pkg/deprecation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exampleConfig = `
# Example hero configuration file
---
# This is an example configuration file for hero.  It is intended to be used
# as a reference for the configuration options available to the user.  The
# configuration file is located at ~/.config/hero/hero.yaml
# Every key may also be set with a HERO_ prefixed environment variable,
# eg: HERO_API_URL

# Where incidents come from: "rest" or "pagerduty"
source: rest

# Base URL of the incidents API (source: rest)
api_url: http://localhost:3333

# Per request timeout
request_timeout: 10s

# PagerDuty API token and teams to filter on (source: pagerduty)
# token: <PagerDuty API token>
# teams:
#   - <PagerDuty Team ID 1>

# Incidents per page for sources that take a limit (0 uses the source default)
page_size: 0

# Browser command and the page to open for an incident; the incident ID
# replaces %%INCIDENT_ID%%
browser: xdg-open
detail_url: http://localhost:3000/incidents/%%INCIDENT_ID%%`
)

const description = `The config command is used to create or validate the hero config file.
The config file is located at ~/.config/hero/hero.yaml and is used to store
the configuration options for the hero application.`

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Create or validate the hero config file",
	Long:         description + "\n\n" + exampleConfig,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case cmd.Flag("create").Value.String() == "true":
			fmt.Fprintln(cmd.OutOrStdout(), exampleConfig)
			return nil
		case cmd.Flag("validate").Value.String() == "true":
			if err := validateConfig(viper.GetViper()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config file is valid")
			return nil
		default:
			return cmd.Usage()
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolP("create", "c", false, "print a sample config file")
	configCmd.Flags().BoolP("validate", "v", false, "validate the config file")
	configCmd.MarkFlagsMutuallyExclusive("create", "validate")
}

// validateConfig logs the settings viper found and validates them
func validateConfig(v *viper.Viper) error {
	settings := v.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if deprecation.Deprecated(k) {
			r, _ := deprecation.Replacement(k)
			log.Info("Found deprecated key; rename it in your config", "key_name", k, "replacement", r)
			continue
		}

		val := fmt.Sprintf("%v", settings[k])
		if strings.Contains(k, "token") {
			val = "*****"
		}

		log.Debug("Found key", k, val)
	}

	c, err := config.Load(v)
	if err != nil {
		return err
	}

	if _, err := c.NewSource(); err != nil {
		return err
	}

	if c.DetailURL == "" {
		log.Warn("missing optional key: detail_url; opening incidents in the browser is disabled")
	}
	return nil
}
