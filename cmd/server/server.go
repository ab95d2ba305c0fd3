// Package main is the entry point of the contacts API.
// It sets up and starts the server by calling initialization functions from the internal package.
package main

import (
	"contacts-api/internal"
)

func main() {
	internal.Init()
}
