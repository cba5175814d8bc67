package main

import (
	"flag"
	"log"
	"os"
)

func main() {
	configfile := flag.String("config", "", "use a specific config file")
	flag.Parse()

	app := &storeBlocks{}

	if err := app.loadConfigFile(*configfile); err != nil {
		app.logErrAndQuit("Failed to load config file:", err.Error())
		return
	}
	if err := app.initConfig(); err != nil {
		app.logErrAndQuit("Failed to init config:", err.Error())
		return
	}

	if err := app.initPlugins(); err != nil {
		app.logErrAndQuit("Failed to init plugins:", err.Error())
		return
	}

	// Healthcheck tool
	if len(flag.Args()) >= 1 && flag.Args()[0] == "healthcheck" {
		health := app.healthcheckExitCode()
		app.shutdown.ShutdownAndWait()
		os.Exit(health)
		return
	}

	if err := app.initDatabase(true); err != nil {
		app.logErrAndQuit("Failed to init database:", err.Error())
		return
	}

	if err := app.initComponents(); err != nil {
		app.logErrAndQuit("Failed to init components:", err.Error())
		return
	}

	if err := app.startServer(); err != nil {
		app.logErrAndQuit("Failed to start server:", err.Error())
		return
	}

	app.shutdown.Wait()
}

func (a *storeBlocks) logErrAndQuit(v ...any) {
	log.Println(v...)
	a.shutdown.ShutdownAndWait()
	os.Exit(1)
}
