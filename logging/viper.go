// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/spf13/viper"
)

const (
	// LoggingKey is the Viper key under which logging options are stored.
	LoggingKey = "log"
)

// FromViper produces an Options from a (possibly nil) root Viper instance, reading the LoggingKey
// subtree.  The whole configuration is unmarshaled rather than using Sub, so that flags bound to
// nested keys such as "log.level" are honored.
func FromViper(v *viper.Viper) (*Options, error) {
	var root struct {
		Log Options `mapstructure:"log"`
	}

	if v != nil {
		if err := v.Unmarshal(&root); err != nil {
			return nil, err
		}
	}

	return &root.Log, nil
}
