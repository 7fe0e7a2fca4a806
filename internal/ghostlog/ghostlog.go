// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ghostlog defines ghostscan's logging interface. Findings and
// errors for a detector are reported through internal/scanner.Outcome and
// rendered by internal/output — this package is only for operational
// diagnostics (a detector panicking, a collector timing out) that never
// belong in the colored report itself. By default it logs to stderr via
// logrus so operational logs never interleave with stdout's report.
package ghostlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is ghostscan's logging interface. It can be replaced with a
// caller-supplied implementation via SetLogger.
type Logger interface {
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

var logger Logger = newDefaultLogger()

// SetLogger overwrites the default ghostscan logger with a user-specified
// one.
func SetLogger(l Logger) { logger = l }

// Errorf is the static formatted error logging function.
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// Warnf is the static formatted warning logging function.
func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

// Infof is the static formatted info logging function.
func Infof(format string, args ...any) { logger.Infof(format, args...) }

// Debugf is the static formatted debug logging function.
func Debugf(format string, args ...any) { logger.Debugf(format, args...) }

// Error is the static error logging function.
func Error(args ...any) { logger.Error(args...) }

// Warn is the static warning logging function.
func Warn(args ...any) { logger.Warn(args...) }

// Info is the static info logging function.
func Info(args ...any) { logger.Info(args...) }

// Debug is the static debug logging function.
func Debug(args ...any) { logger.Debug(args...) }

// defaultLogger wraps a logrus.Logger pointed at stderr, keeping it out of
// the report stream on stdout.
type defaultLogger struct {
	entry *logrus.Logger
}

func newDefaultLogger() *defaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return &defaultLogger{entry: l}
}

func (d *defaultLogger) Errorf(format string, args ...any) { d.entry.Errorf(format, args...) }
func (d *defaultLogger) Error(args ...any)                 { d.entry.Error(args...) }
func (d *defaultLogger) Warnf(format string, args ...any)  { d.entry.Warnf(format, args...) }
func (d *defaultLogger) Warn(args ...any)                  { d.entry.Warn(args...) }
func (d *defaultLogger) Infof(format string, args ...any)  { d.entry.Infof(format, args...) }
func (d *defaultLogger) Info(args ...any)                  { d.entry.Info(args...) }
func (d *defaultLogger) Debugf(format string, args ...any) { d.entry.Debugf(format, args...) }
func (d *defaultLogger) Debug(args ...any)                 { d.entry.Debug(args...) }
