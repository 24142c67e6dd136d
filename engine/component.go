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
	"time"

	"github.com/rs/zerolog"
)

type component struct {
	log  zerolog.Logger
	run  func() error
	stop func()
}

// Run blocks until the component returns, and logs how long it ran for.
func (c *component) Run() error {
	c.log.Info().Msg("component starting")

	start := time.Now()
	err := c.run()
	uptime := time.Since(start).Round(time.Millisecond)
	if err != nil {
		c.log.Error().Err(err).Dur("uptime", uptime).Msg("component failed")
		return err
	}

	c.log.Info().Dur("uptime", uptime).Msg("component done")

	return nil
}

func (c *component) Stop() {
	c.log.Debug().Msg("component stopping")
	c.stop()
	c.log.Info().Msg("component stopped")
}
