package main

import (
	"cbrbot/internal/app"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("cbrbot stopped")
	}
}
