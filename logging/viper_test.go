// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperNil(t *testing.T) {
	o, err := FromViper(nil)
	require.NoError(t, err)
	assert.Equal(t, Options{}, *o)
}

func TestFromViperFile(t *testing.T) {
	v := viper.New()
	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
		{"log": {
			"file": "foobar.log",
			"level": "info",
			"maxbackups": 3,
			"json": true
		}}
	`)))

	o, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, Options{File: "foobar.log", Level: "info", MaxBackups: 3, JSON: true}, *o)
}

func TestFromViperFlagOverride(t *testing.T) {
	var (
		v = viper.New()
		f = pflag.NewFlagSet("test", pflag.ContinueOnError)
	)

	f.String("log-level", "", "")
	require.NoError(t, f.Parse([]string{"--log-level", "debug"}))
	require.NoError(t, v.BindPFlag("log.level", f.Lookup("log-level")))

	v.SetConfigType("json")
	require.NoError(t, v.ReadConfig(strings.NewReader(`{"log": {"file": "stdout", "level": "warn"}}`)))

	o, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", o.Level)
	assert.Equal(t, StdoutFile, o.File)
}
