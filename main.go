// Copyright 2016 The Goibm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/goibm/inp"
	"github.com/cpmech/goibm/ns"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("\nERROR: %v\n", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)
	erasePrev := io.ArgToBool(2, true)

	// message
	if mpi.Rank() == 0 && verbose {
		io.PfWhite("\nGoibm -- Immersed-Boundary Navier-Stokes Solver\n")
		io.Pf("Copyright 2016 The Goibm Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
			"erase previous results", "erasePrev", erasePrev,
		))
	}

	// fix erasePrev flag when MPI is on
	if mpi.IsOn() && mpi.Rank() != 0 {
		erasePrev = false
	}

	// simulation data
	sim := inp.ReadSim(fnamepath, erasePrev)

	// solver
	sol, err := ns.New(sim, verbose)
	if err != nil {
		chk.Panic("cannot initialize solver:\n%v", err)
	}
	defer sol.Free()

	// run simulation
	err = sol.Run()
	if err != nil {
		chk.Panic("Run failed:\n%v", err)
	}

	// stage times
	if mpi.Rank() == 0 && verbose {
		io.Pf("\n%s", sol.Stats.Summary())
	}
}
