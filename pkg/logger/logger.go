package logger

import "go.uber.org/zap"

var log *zap.SugaredLogger

// Init configures the process logger. Production gets JSON sampling output,
// everything else the human-readable development encoder.
func Init(environment string) {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction(zap.AddCallerSkip(1))
	} else {
		l, err = zap.NewDevelopment(zap.AddCallerSkip(1))
	}
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

func ensure() *zap.SugaredLogger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, keysAndValues ...any) {
	ensure().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	ensure().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	ensure().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	ensure().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	ensure().Fatalw(msg, keysAndValues...)
}
