package main

import (
	"github.com/jgoldverg/green-transfer-scheduler/cmd"
)

func main() {
	cmd.Execute()
}
