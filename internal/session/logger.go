package session

import "github.com/sirupsen/logrus"

type Logger = logrus.FieldLogger
