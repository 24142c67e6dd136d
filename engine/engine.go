// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package engine

import (
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Engine runs a set of components until one of them finishes or an interrupt
// signal is received, and then stops all of them.
type Engine struct {
	log        zerolog.Logger
	components []*component

	sig  chan os.Signal
	exit func(code int)
}

// New creates a new engine.
func New(log zerolog.Logger, name string, sig chan os.Signal) *Engine {
	e := Engine{
		log:  log.With().Str("engine", name).Logger(),
		sig:  sig,
		exit: os.Exit,
	}

	return &e
}

// Component registers a new component for the engine. Components will be shut down
// in the same order as the one in which they were registered.
func (e *Engine) Component(name string, run func() error, stop func()) *Engine {
	c := component{
		log:  e.log.With().Str("component", name).Logger(),
		run:  run,
		stop: stop,
	}

	e.components = append(e.components, &c)

	return e
}

// Run launches the engine components and waits for either one of them to
// finish, or for an external signal to shut the engine down. It then stops
// all components and returns the first error a component returned.
func (e *Engine) Run() error {
	done := make(chan struct{}, len(e.components))

	var group errgroup.Group
	for _, c := range e.components {
		c := c
		group.Go(func() error {
			defer func() { done <- struct{}{} }()
			return c.Run()
		})
	}

	// Here, we are waiting for a signal, or for one of the components to
	// finish. In both cases, we proceed to shut down everything, while also
	// entering a goroutine that allows us to force shut down by sending
	// another signal.
	select {
	case <-e.sig:
		e.log.Info().Msg("engine stopping")
	case <-done:
		e.log.Info().Msg("engine finishing")
	}
	go func() {
		<-e.sig
		e.log.Warn().Msg("forcing exit")
		e.exit(1)
	}()

	for _, c := range e.components {
		c.Stop()
	}

	err := group.Wait()
	if err != nil {
		e.log.Warn().Err(err).Msg("engine aborted")
		return err
	}

	e.log.Info().Msg("engine done")

	return nil
}
