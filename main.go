// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"flowlang/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the Flow REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a function declaration, or :tokens, :funcs, :quit")
	repl.Start(os.Stdout)
}
