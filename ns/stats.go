// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ns

import (
	"bytes"
	"time"

	"github.com/cpmech/gosl/io"
)

// Stats accumulates wall-clock time per named stage of the run
type Stats struct {
	order []string
	total map[string]time.Duration
	count map[string]int
}

// NewStats returns a new stage-time accumulator
func NewStats() *Stats {
	return &Stats{
		total: make(map[string]time.Duration),
		count: make(map[string]int),
	}
}

// Stage starts timing one stage; calling the returned function stops it
func (o *Stats) Stage(name string) func() {
	if _, ok := o.total[name]; !ok {
		o.order = append(o.order, name)
		o.total[name] = 0
	}
	t0 := time.Now()
	return func() {
		o.total[name] += time.Since(t0)
		o.count[name]++
	}
}

// Summary returns a table with the accumulated stage times
func (o *Stats) Summary() string {
	var b bytes.Buffer
	io.Ff(&b, "%-20s %8s %14s\n", "stage", "calls", "total")
	for _, name := range o.order {
		io.Ff(&b, "%-20s %8d %14v\n", name, o.count[name], o.total[name])
	}
	return b.String()
}
