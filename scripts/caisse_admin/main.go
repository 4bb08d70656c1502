package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newApp(connectEnv).Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("caisse_admin")
	}
}
