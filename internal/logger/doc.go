// Package logger wraps zap to offer a global sugared logger, context helpers
// (ToContext/FromContext/WithName/WithKV) and level parsing.
//
// Services receive a context and extract the logger from it, so names and
// key-values attached upstream follow every log line.
package logger
