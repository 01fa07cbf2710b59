package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/oceancatch/fishhub/config"
	"github.com/oceancatch/fishhub/internal/app"
	"github.com/oceancatch/fishhub/internal/storeapi"
	"github.com/oceancatch/fishhub/internal/webserver"
)

var (
	conffile = flag.String("c", "/etc/fishhub.yml", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	showver  = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showver {
		fmt.Printf("fishhub %s\n", version)
		return
	}

	cfg := config.LoadConfig(*conffile)

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.L().Info("database initialized")
		return
	}

	webserver.Init(application)
	storeapi.InitRouter()

	if err := webserver.Listen(); err != nil {
		zap.L().Error("web server stopped", zap.Error(err))
		os.Exit(1)
	}
}
