package main

import (
	"fmt"
	"os"

	"github.com/okarev/chronomap-backend/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	fmt.Printf("Server listening on :%s\n", application.Cfg.HTTPPort)
	if err := application.Run(); err != nil {
		application.Log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
