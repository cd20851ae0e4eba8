// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be read.
	ErrReadConfig = errors.New("failed to read config file")
	// ErrParseConfig is returned when the configuration file is not valid YAML.
	ErrParseConfig = errors.New("failed to parse config file")
)

// FsFactory returns the filesystem configuration files are read from.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Overrides is one configuration layer. Nil fields are not applied.
type Overrides struct {
	Jobs           *int     `yaml:"jobs"`
	TimeoutSeconds *int     `yaml:"timeout_seconds"`
	Shell          *bool    `yaml:"shell"`
	ShellPath      *string  `yaml:"shell_path"`
	ShellFlag      *string  `yaml:"shell_flag"`
	NullSeparator  *bool    `yaml:"null_separator"`
	Regex          *string  `yaml:"regex"`
	Inputs         []string `yaml:"inputs"`
	LogLevel       *string  `yaml:"log_level"`
	LogFormat      *string  `yaml:"log_format"`
	MetricsFile    *string  `yaml:"metrics_file"`
}

// LoadFile reads a YAML configuration layer from path.
func LoadFile(path string) (Overrides, error) {
	var o Overrides

	b, err := afero.ReadFile(FsFactory(), path)
	if err != nil {
		return o, fmt.Errorf("%w %s: %w", ErrReadConfig, path, err)
	}

	if err := yaml.UnmarshalWithOptions(b, &o, yaml.DisallowUnknownField()); err != nil {
		return o, fmt.Errorf("%w %s: %w", ErrParseConfig, path, err)
	}

	return o, nil
}

// Apply copies the set fields of o into c.
// Zero or negative jobs and timeouts are rejected here because, once applied,
// a zero timeout would be indistinguishable from "no timeout".
func (c *Config) Apply(o Overrides) error {
	if o.Jobs != nil {
		if *o.Jobs <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidJobs, *o.Jobs)
		}

		c.Jobs = *o.Jobs
	}

	if o.TimeoutSeconds != nil {
		if *o.TimeoutSeconds <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidTimeout, *o.TimeoutSeconds)
		}

		c.Timeout = time.Duration(*o.TimeoutSeconds) * time.Second
	}

	setIf(&c.Shell, o.Shell)
	setIf(&c.ShellPath, o.ShellPath)
	setIf(&c.ShellFlag, o.ShellFlag)
	setIf(&c.NullSeparator, o.NullSeparator)
	setIf(&c.Regex, o.Regex)
	setIf(&c.LogLevel, o.LogLevel)
	setIf(&c.LogFormat, o.LogFormat)
	setIf(&c.MetricsFile, o.MetricsFile)

	if o.Inputs != nil {
		c.Inputs = append([]string(nil), o.Inputs...)
	}

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
