package main

import (
	"context"
	"log"
	"time"

	"github.com/carlmjohnson/requests"
)

// healthcheckExitCode pings the running server, for use as a container
// healthcheck command.
func (a *storeBlocks) healthcheckExitCode() int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := requests.URL(a.cfg.Server.PublicAddress).Path("/ping").Fetch(ctx)
	if err != nil {
		log.Println("Healthcheck failed:", err.Error())
		return 1
	}
	return 0
}
