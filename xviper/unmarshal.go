// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/xmidt-org/officehours/clock"
)

type unmarshaler interface {
	Unmarshal(interface{}, ...viper.DecoderConfigOption) error
}

// StringToIntervalHookFunc allows a clock.Interval to be written as a single "min..max" string.
func StringToIntervalHookFunc() mapstructure.DecodeHookFuncType {
	intervalType := reflect.TypeOf(clock.Interval{})
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to != intervalType {
			return data, nil
		}

		return clock.ParseInterval(data.(string))
	}
}

// DecodeHook is the decoding used for every configuration struct: durations may be written as
// strings like "300ms", intervals as "200ms..800ms", and comma-separated strings become slices.
func DecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			StringToIntervalHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// Unmarshal decodes the whole configuration into the given value using DecodeHook.
func Unmarshal(u unmarshaler, v interface{}) error {
	return u.Unmarshal(v, DecodeHook())
}

// UnmarshalSeveral decodes the whole configuration into each value in turn, stopping at the first error.
func UnmarshalSeveral(u unmarshaler, v ...interface{}) error {
	var err error
	for i := 0; err == nil && i < len(v); i++ {
		err = Unmarshal(u, v[i])
	}

	return err
}

type defaulter interface {
	SetDefault(string, interface{})
}

type Defaults map[string]interface{}

func ApplyDefaults(d defaulter, v Defaults) {
	for key, value := range v {
		d.SetDefault(key, value)
	}
}
