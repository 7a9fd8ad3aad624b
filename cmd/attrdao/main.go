/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command attrdao reads entities from an attribute store domain.
//
//	attrdao get p-42 --domain Players
//	attrdao page --count 50 --token <token>
//	attrdao all --stream
//	attrdao count --where "status = 'active'"
//	attrdao select 'SELECT * FROM "Players" WHERE rating > 1500'
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
