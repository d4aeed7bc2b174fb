// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/filevaultd/address"
	"github.com/bitmark-inc/filevaultd/query"
)

func printJSON(c *cli.Context, value interface{}) error {
	buffer, err := json.MarshalIndent(value, "", "  ")
	if nil != err {
		return cli.NewExitError("encode error: "+err.Error(), 1)
	}
	fmt.Fprintf(c.App.Writer, "%s\n", buffer)
	return nil
}

func runFiles(c *cli.Context) error {
	filter := query.FileFilter{
		Search:    c.String("search"),
		MimeType:  c.String("mime"),
		IsUpdated: c.Bool("updated"),
		Sort:      c.String("sort"),
	}
	page := query.Page{
		Offset: c.Int("offset"),
		Limit:  c.Int("limit"),
	}
	return printJSON(c, query.Files(filter, page))
}

func runFile(c *cli.Context) error {
	if hash := c.String("hash"); "" != hash {
		if file, ok := query.FileByHash(hash); ok {
			return printJSON(c, file)
		}
		return cli.NewExitError("no file with that hash", 1)
	}
	if checksum := c.String("checksum"); "" != checksum {
		if file, ok := query.FileByChecksum(checksum); ok {
			return printJSON(c, file)
		}
		return cli.NewExitError("no file with that checksum", 1)
	}

	id := c.Args().First()
	if "" == id {
		return cli.NewExitError("a file id is required", 1)
	}
	if file, ok := query.FileById(id); ok {
		return printJSON(c, file)
	}
	return cli.NewExitError("no file with that id", 1)
}

func runCollections(c *cli.Context) error {
	page := query.Page{
		Offset: c.Int("offset"),
		Limit:  c.Int("limit"),
	}
	return printJSON(c, query.Collections(page))
}

func runCollection(c *cli.Context) error {
	id := c.Args().First()
	if "" == id {
		return cli.NewExitError("a collection id is required", 1)
	}
	if collection, ok := query.CollectionById(id); ok {
		return printJSON(c, collection)
	}
	return cli.NewExitError("no collection with that id", 1)
}

func runStatistics(c *cli.Context) error {
	return printJSON(c, query.Statistics())
}

func runAccount(c *cli.Context) error {
	text := c.Args().First()
	if "" == text {
		return cli.NewExitError("an account address is required", 1)
	}
	owner, err := address.FromBase58(text)
	if nil != err {
		return cli.NewExitError("invalid address: "+err.Error(), 1)
	}
	if account, ok := query.Account(owner); ok {
		return printJSON(c, account)
	}
	return cli.NewExitError("no account with that address", 1)
}

func runMap(c *cli.Context) error {
	key := c.Args().First()
	if "" == key {
		return cli.NewExitError("an email hash or username is required", 1)
	}
	if entry, ok := query.EmailOrUsernameMap(key); ok {
		return printJSON(c, entry)
	}
	return cli.NewExitError("no map entry for that key", 1)
}

func runTransfers(c *cli.Context) error {
	return printJSON(c, query.TimedTransfers())
}
