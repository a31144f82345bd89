package main

import (
	"github.com/AnjosHD-Black/bmw-offer-pilot/cmd"
)

func main() {
	cmd.Execute()
}
