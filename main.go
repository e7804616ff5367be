package main

import (
	"io"
	"log"
	"os"
	_ "time/tzdata"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jstramigioli/riviera-app/internal/app"
	"github.com/jstramigioli/riviera-app/internal/config"
	"github.com/jstramigioli/riviera-app/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)

		return 1
	}

	var output io.Writer = os.Stdout

	if cfg.LogFile != "" {
		logFile := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    config.DefaultLogMaxMB,
			MaxBackups: 3,  //nolint:gomnd
			MaxAge:     28, //nolint:gomnd
			Compress:   true,
		}
		defer logFile.Close()

		output = io.MultiWriter(os.Stdout, logFile)
	}

	l := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Output:  output,
		Service: "riviera",
	})

	var exitCode int

	if err := app.Run(cfg, l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	return exitCode
}
