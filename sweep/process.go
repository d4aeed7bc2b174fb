// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sweep

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// how often the standalone daemon sweeps; a node embedding the module
// calls Run at its own block boundaries instead
const interval = 1 * time.Minute

// Process - periodic sweeping for the standalone daemon
type Process struct {
	log *logger.L
}

// NewProcess - create the background sweeper
func NewProcess() *Process {
	return &Process{
		log: logger.New("sweep"),
	}
}

// Run - background process entry
func (p *Process) Run(args interface{}, shutdown <-chan struct{}) {
	p.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(interval):
			removed, err := Run(time.Now().UTC().Unix())
			if nil != err {
				p.log.Errorf("sweep error: %s", err)
			} else if 0 < removed {
				p.log.Infof("swept %d expired transfers", removed)
			}
		}
	}

	p.log.Info("shutting down…")
	p.log.Flush()
}
