// cmd/stemcode/main.go
package main

import (
	"stemcode/internal/app"
	"stemcode/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
