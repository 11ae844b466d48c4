// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package officehours

import (
	"github.com/go-kit/kit/metrics/provider"
	"github.com/xmidt-org/officehours/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ListenerGroup is the fx value group from which the Office collects its listeners.
const ListenerGroup = "officehours.listeners"

// OfficeIn is the set of dependencies for an fx-built Office.
type OfficeIn struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Measures  *Measures       `optional:"true"`
	Clock     clock.Interface `optional:"true"`
	Listeners []Listener      `group:"officehours.listeners"`
}

// NewOffice is the fx constructor for an Office.
func NewOffice(in OfficeIn) *Office {
	return New(
		in.Config,
		WithLogger(in.Logger),
		WithClock(in.Clock),
		WithMeasures(in.Measures),
		WithListeners(in.Listeners...),
	)
}

// Provide supplies the Config (from a *viper.Viper), the Measures (from a go-kit provider) and the
// Office as uber/fx components.
func Provide() fx.Option {
	return fx.Provide(
		FromViper,
		func(p provider.Provider) *Measures {
			return NewMeasures(p)
		},
		NewOffice,
	)
}

// ProvideListener adds a Listener to the group the Office draws from.  The constructor may be
// any function returning a Listener.
func ProvideListener(constructor interface{}) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Group:  ListenerGroup,
			Target: constructor,
		},
	)
}
