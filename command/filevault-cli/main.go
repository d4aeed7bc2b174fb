// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/filevaultd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "filevault-cli"
	app.Usage = "inspect a filevaultd registry database"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "database, d",
			Value: "",
			Usage: "*registry database path without the .leveldb suffix `PATH`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "files",
			Usage: "list files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "search, s",
					Usage: " substring match on title, collection title and custom fields `TEXT`",
				},
				cli.StringFlag{
					Name:  "mime, m",
					Usage: " restrict to one mime type `TYPE`",
				},
				cli.BoolFlag{
					Name:  "updated, u",
					Usage: " only files whose content was replaced",
				},
				cli.StringFlag{
					Name:  "sort",
					Usage: " sort order `[date:asc|date:desc|size:asc|size:desc]`",
				},
				cli.IntFlag{
					Name:  "offset, o",
					Usage: " pagination offset `N`",
				},
				cli.IntFlag{
					Name:  "limit, l",
					Value: -1,
					Usage: " pagination limit, -1 for unlimited `N`",
				},
			},
			Action: runFiles,
		},
		{
			Name:      "file",
			Usage:     "show one file",
			ArgsUsage: " ID",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "hash",
					Usage: " lookup by content-version hash `HASH`",
				},
				cli.StringFlag{
					Name:  "checksum",
					Usage: " lookup by content checksum `CHECKSUM`",
				},
			},
			Action: runFile,
		},
		{
			Name:  "collections",
			Usage: "list collections",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "offset, o",
					Usage: " pagination offset `N`",
				},
				cli.IntFlag{
					Name:  "limit, l",
					Value: -1,
					Usage: " pagination limit, -1 for unlimited `N`",
				},
			},
			Action: runCollections,
		},
		{
			Name:      "collection",
			Usage:     "show one collection",
			ArgsUsage: " ID",
			Action:    runCollection,
		},
		{
			Name:   "statistics",
			Usage:  "show the aggregate counters",
			Action: runStatistics,
		},
		{
			Name:      "account",
			Usage:     "show one account",
			ArgsUsage: " ADDRESS",
			Action:    runAccount,
		},
		{
			Name:      "map",
			Usage:     "reverse lookup by email hash or username",
			ArgsUsage: " KEY",
			Action:    runMap,
		},
		{
			Name:   "transfers",
			Usage:  "list pending timed transfers",
			Action: runTransfers,
		},
	}

	app.Before = func(c *cli.Context) error {
		database := c.GlobalString("database")
		if "" == database {
			return cli.NewExitError("a database path is required", 1)
		}
		err := storage.Initialise(database, storage.ReadOnly)
		if nil != err {
			return cli.NewExitError("cannot open database: "+err.Error(), 1)
		}
		return nil
	}
	app.After = func(c *cli.Context) error {
		storage.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
