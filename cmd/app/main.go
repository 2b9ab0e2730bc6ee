package main

import (
	"github.com/humanbelnik/oscarparty/internal/app"
	"github.com/humanbelnik/oscarparty/internal/config"
)

func main() {
	app.Go(config.Load())
}
