package main

import (
	"github.com/ethangriffith2004/midisync/cmd"
)

func main() {
	cmd.Execute()
}
