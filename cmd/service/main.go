// File: cmd/service/main.go
// @title        User Service API
// @version      1.0
// @description  使用者管理 REST API
// @host         localhost:3000
// @BasePath     /
package main

import (
	"log"
	"os"
)

var exitFunc = os.Exit

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
