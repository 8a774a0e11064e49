package main

import (
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogging tees the standard logger and gin's request log into a rotating
// file when path is set. The returned func flushes and closes the file.
func setupLogging(path string) func() {
	if path == "" {
		return func() {}
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	w := io.MultiWriter(os.Stdout, file)
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, file)

	log.Printf("Logging to %s", path)
	return func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing log file: %v", err)
		}
	}
}
