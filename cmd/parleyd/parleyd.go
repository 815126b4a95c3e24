package main

import (
	"math/rand"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/kiosk404/parley/internal/parleyd"
)

func main() {
	rand.New(rand.NewSource(time.Now().UTC().UnixNano()))

	parleyd.NewApp("parleyd").Run()
}
