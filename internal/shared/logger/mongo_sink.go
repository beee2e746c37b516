package logger

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MongoLogSink routes MongoDB driver log messages into zap.
// It satisfies options.LogSink from the mongo driver.
type MongoLogSink struct {
	sugar *zap.SugaredLogger
}

// NewMongoLogSink builds a JSON zap logger writing to out.
func NewMongoLogSink(out io.Writer) *MongoLogSink {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(out),
		zapcore.DebugLevel,
	)
	return NewMongoLogSinkFromZap(zap.New(core).Named("mongo"))
}

// NewMongoLogSinkFromZap wraps an existing zap logger.
func NewMongoLogSinkFromZap(z *zap.Logger) *MongoLogSink {
	return &MongoLogSink{sugar: z.Sugar()}
}

// Info logs a driver message. Verbosity 1 is informational, anything higher is debug.
func (s *MongoLogSink) Info(level int, message string, keysAndValues ...interface{}) {
	if level <= 1 {
		s.sugar.Infow(message, keysAndValues...)
		return
	}
	s.sugar.Debugw(message, keysAndValues...)
}

// Error logs a driver error.
func (s *MongoLogSink) Error(err error, message string, keysAndValues ...interface{}) {
	s.sugar.Errorw(message, append([]interface{}{zap.Error(err)}, keysAndValues...)...)
}

// Sync flushes buffered entries.
func (s *MongoLogSink) Sync() error {
	return s.sugar.Sync()
}
