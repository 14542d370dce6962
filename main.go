// Command starfield arranges ideas as stars in an animated terminal galaxy.
package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/papapumpkin/starfield/cmd"
)

func main() {
	cmd.Execute()
}
