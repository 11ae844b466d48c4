// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastArguments = []string{
	"--work-min", "1ms", "--work-max", "2ms",
	"--help-min", "1ms", "--help-max", "2ms",
	"--poll", "5ms",
	"--seed", "11",
}

func testRun(ctx context.Context, arguments ...string) (int, []string, string) {
	var stdout, stderr bytes.Buffer
	code := run(ctx, arguments, &stdout, &stderr)
	return code, strings.Split(strings.TrimSpace(stdout.String()), "\n"), stderr.String()
}

func TestRunFlags(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	code, lines, _ := testRun(context.Background(), append([]string{"-s", "3", "-c", "1", "-r", "2"}, fastArguments...)...)
	assert.Equal(exitOK, code)
	require.NotEmpty(lines)
	assert.Equal("Config: students=3, chairs=1, requests_per_student=2", lines[0])
	assert.True(strings.HasPrefix(lines[len(lines)-1], "Summary: attempts=6,"))
}

func TestRunClamping(t *testing.T) {
	code, lines, _ := testRun(context.Background(), append([]string{"-s", "0", "-c", "-5", "-r", "-1"}, fastArguments...)...)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Config: students=1, chairs=0, requests_per_student=1", lines[0])
	assert.Contains(t, lines, "[Stu01] Every chair is taken. Back to programming.")
}

func TestRunConfigFile(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		file    = filepath.Join(t.TempDir(), "officehours.yaml")
	)

	require.NoError(os.WriteFile(file, []byte(
		"students: 2\nchairs: 2\nrequests: 1\nworkTime: 1ms..2ms\nhelpTime: 1ms\npollInterval: 5ms\nlog:\n  level: debug\n  file: "+filepath.Join(filepath.Dir(file), "diagnostics.log")+"\n",
	), 0600))

	code, lines, _ := testRun(context.Background(), "-f", file, "-c", "1")
	assert.Equal(exitOK, code)
	assert.Equal("Config: students=2, chairs=1, requests_per_student=1", lines[0])

	info, err := os.Stat(filepath.Join(filepath.Dir(file), "diagnostics.log"))
	require.NoError(err)
	assert.Positive(info.Size())
}

func TestRunEnvironment(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		t.Setenv("OFFICEHOURS_STUDENTS", "4")
		t.Setenv("OFFICEHOURS_REQUESTS", "1")

		code, lines, _ := testRun(context.Background(), fastArguments...)
		assert.Equal(t, exitOK, code)
		assert.Equal(t, "Config: students=4, chairs=3, requests_per_student=1", lines[0])
	})

	t.Run("NotANumber", func(t *testing.T) {
		t.Setenv("OFFICEHOURS_CHAIRS", "several")

		code, _, stderr := testRun(context.Background(), fastArguments...)
		assert.Equal(t, exitError, code)
		assert.NotEmpty(t, stderr)
	})
}

func TestRunErrors(t *testing.T) {
	testData := []struct {
		name      string
		arguments []string
	}{
		{"UnknownFlag", []string{"--nosuch"}},
		{"BadFlagValue", []string{"-s", "many"}},
		{"MissingFile", []string{"-f", "/nosuch/officehours.yaml"}},
		{"BadLogLevel", []string{"--log-level", "loud"}},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			code, _, _ := testRun(context.Background(), append(record.arguments, fastArguments...)...)
			assert.Equal(t, exitError, code)
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, _, stderr := testRun(context.Background(), "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "--students")
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, _, _ := testRun(ctx, "--work-min", "1h", "--work-max", "1h", "--poll", "5ms")
	assert.Equal(t, exitInterrupted, code)
}

func TestRunMetricsEndpoint(t *testing.T) {
	code, lines, _ := testRun(context.Background(), append([]string{"--metrics-address", "127.0.0.1:0", "-s", "2", "-r", "1"}, fastArguments...)...)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Config: students=2, chairs=3, requests_per_student=1", lines[0])
}
