// Copyright 2020 New Relic Corporation. All rights reserved.
// SPDX-License-Identifier: Apache-2.0
// agent domain features
package log

import (
	"github.com/sirupsen/logrus"
)

// WithComponent decorates log context with a component name (collector, harvester, handshake...).
func WithComponent(name string) Entry {
	return func() *logrus.Entry {
		return w.l.WithField("component", name)
	}
}

// WithComponent decorates entry context with a component name.
func (e Entry) WithComponent(name string) Entry {
	return func() *logrus.Entry {
		return e().WithField("component", name)
	}
}

// WithRunID decorates log context with the agent run id assigned at connect time.
func WithRunID(runID string) Entry {
	return func() *logrus.Entry {
		return w.l.WithField("agent_run_id", runID)
	}
}

// WithRunID decorates entry context with the agent run id assigned at connect time.
func (e Entry) WithRunID(runID string) Entry {
	return func() *logrus.Entry {
		return e().WithField("agent_run_id", runID)
	}
}
