/*
   Gen3Save - Generation III cartridge save decoder
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of Gen3Save.

   Gen3Save is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   Gen3Save is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with Gen3Save. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//
const runnerHelpEpilogue = `- All settings can also be given as environment variables, prefixed with
  GEN3SAVE_ and in upper case, with dashes replaced by underscores, e.g.
  GEN3SAVE_LOG_LEVEL=debug. Settings can further be read from a YAML config
  file passed via --config. Command line flags take precedence over
  environment, which takes precedence over config file.

`

// Runner is the base for all commands. It maps settings between command line
// flags, environment, and config file, and runs the command's exec function.
type Runner struct {
	cmd      *cobra.Command
	viper    *viper.Viper
	exec     func() error
	settings []*setting
	//
	LogLevel string
	Config   string
	Address  string
}

//
type setting struct {
	flag     *pflag.Flag
	ref      interface{}
	required bool
}

//
func (s *setting) String() string {
	if s.flag.Shorthand != "" {
		return fmt.Sprintf("--%s/-%s", s.flag.Name, s.flag.Shorthand)
	}
	return fmt.Sprintf("--%s", s.flag.Name)
}

//
func NewRunner(use, short, long, helpPrefix, helpEpilogue string,
	exec func() error) *Runner {

	r := &Runner{
		exec:  exec,
		viper: viper.New(),
	}

	r.cmd = &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.exec()
		},
	}

	if helpPrefix != "" || helpEpilogue != "" {
		r.cmd.SetUsageTemplate(
			helpPrefix + r.cmd.UsageTemplate() + "\n" + helpEpilogue)
	}

	r.viper.SetEnvPrefix("GEN3SAVE")
	r.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	r.viper.AutomaticEnv()

	return r
}

// Command returns the cobra command of this runner.
func (r *Runner) Command() *cobra.Command {
	return r.cmd
}

// AddSetting adds a setting with given name and shorthand. ref needs to point
// to a string, int, or bool, which will receive the setting's value during
// ParseSettings. env optionally names an additional environment variable to
// read the setting from, next to the prefixed default. dflt may be nil, in
// which case the zero value is the default.
func (r *Runner) AddSetting(ref interface{}, name, short, env string,
	dflt interface{}, usage string, required bool) {

	flags := r.cmd.Flags()

	switch p := ref.(type) {

	case *string:
		d := ""
		if dflt != nil {
			d = dflt.(string)
		}
		flags.StringVarP(p, name, short, d, usage)

	case *int:
		d := 0
		if dflt != nil {
			d = dflt.(int)
		}
		flags.IntVarP(p, name, short, d, usage)

	case *bool:
		d := false
		if dflt != nil {
			d = dflt.(bool)
		}
		flags.BoolVarP(p, name, short, d, usage)

	case *time.Duration:
		var d time.Duration
		if dflt != nil {
			d = dflt.(time.Duration)
		}
		flags.DurationVarP(p, name, short, d, usage)

	default:
		panic(fmt.Sprintf("unsupported setting type for '%s': %T", name, ref))
	}

	flag := flags.Lookup(name)
	if err := r.viper.BindPFlag(name, flag); err != nil {
		panic(err)
	}
	if env != "" {
		if err := r.viper.BindEnv(name, env); err != nil {
			panic(err)
		}
	}

	r.settings = append(r.settings, &setting{
		flag: flag, ref: ref, required: required})
}

// AddBaseSettings adds the settings common to all commands.
func (r *Runner) AddBaseSettings() {
	r.AddSetting(&r.LogLevel, "log-level", "", "", "warn",
		"log level, one of: panic, fatal, error, warn, info, debug, trace",
		false)
	r.AddSetting(&r.Config, "config", "", "", nil,
		"YAML config file to read settings from", false)
}

// AddAddressSetting adds the setting for the API server address.
func (r *Runner) AddAddressSetting() {
	r.AddSetting(&r.Address, "address", "a", "", ":8888",
		"listen address of API server", false)
}

// ParseSettings resolves the final value of all settings, reading the config
// file first if one was given, and applies the log level.
func (r *Runner) ParseSettings() error {

	if cfg := r.viper.GetString("config"); cfg != "" {
		r.viper.SetConfigFile(cfg)
		r.viper.SetConfigType("yaml")
		if err := r.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("cannot read config file '%s': %v", cfg, err)
		}
	}

	for _, s := range r.settings {

		name := s.flag.Name
		if s.required && !r.viper.IsSet(name) {
			return fmt.Errorf("required setting %s not set", s)
		}

		switch p := s.ref.(type) {
		case *string:
			*p = r.viper.GetString(name)
		case *int:
			*p = r.viper.GetInt(name)
		case *bool:
			*p = r.viper.GetBool(name)
		case *time.Duration:
			*p = r.viper.GetDuration(name)
		}
	}

	if r.LogLevel != "" {
		level, err := log.ParseLevel(r.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	return nil
}

// IsSet determines whether setting name was explicitly set, via flag,
// environment, or config file.
func (r *Runner) IsSet(name string) bool {
	return r.viper.IsSet(name)
}

//
func (r *Runner) out() io.Writer {
	return r.cmd.OutOrStdout()
}

//
func (r *Runner) apiCall(method, path string, json bool,
	body io.Reader) (io.ReadCloser, error) {

	addr := r.Address
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	if !strings.HasPrefix(addr, "http") {
		addr = "http://" + addr
	}

	req, err := http.NewRequest(method, addr+path, body)
	if err != nil {
		return nil, err
	}
	if json {
		req.Header.Set("Accept", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	return resp.Body, nil
}
