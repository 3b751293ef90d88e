package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

//	@title			Book Review Service API
//	@version		1.0
//	@description	A RESTful API for managing books and reviews with a cache-aside listing.

func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialize: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
