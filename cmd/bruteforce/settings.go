package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileSettings is the YAML configuration file layout.
//
//	threads: 8
//	iters_per_stop_check: 1024
//	timeout: 30s
//	metrics_textfile: /var/lib/node_exporter/bruteforce.prom
//	log:
//	  level: debug
//	  format: json
type fileSettings struct {
	Threads           uint   `yaml:"threads"`
	ItersPerStopCheck uint   `yaml:"iters_per_stop_check"`
	Timeout           string `yaml:"timeout"`
	MetricsTextfile   string `yaml:"metrics_textfile"`
	Log               struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// runSettings are the effective settings after merging the file and the flags.
type runSettings struct {
	threads           uint
	itersPerStopCheck uint
	timeout           time.Duration
	metricsTextfile   string
	logLevel          string
	logFormat         string
}

func loadFileSettings(path string) (*fileSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fs fileSettings
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fs, nil
}

// apply copies every value set in the file that was not overridden by a flag.
func (fs *fileSettings) apply(rs *runSettings, changed func(name string) bool) error {
	if fs.Threads > 0 && !changed(flagThreads) {
		rs.threads = fs.Threads
	}
	if fs.ItersPerStopCheck > 0 && !changed(flagIters) {
		rs.itersPerStopCheck = fs.ItersPerStopCheck
	}
	if fs.Timeout != "" && !changed(flagTimeout) {
		d, err := time.ParseDuration(fs.Timeout)
		if err != nil {
			return fmt.Errorf("config timeout: %w", err)
		}
		rs.timeout = d
	}
	if fs.MetricsTextfile != "" && !changed(flagMetricsTextfile) {
		rs.metricsTextfile = fs.MetricsTextfile
	}
	if fs.Log.Level != "" && !changed(flagLogLevel) {
		rs.logLevel = fs.Log.Level
	}
	if fs.Log.Format != "" && !changed(flagLogFormat) {
		rs.logFormat = fs.Log.Format
	}
	return nil
}

func (rs *runSettings) logger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(rs.logLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(rs.logFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", rs.logFormat)
	}
}
