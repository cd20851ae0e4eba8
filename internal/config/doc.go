// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config defines the immutable run configuration for parx.
//
// A Config starts from Default, then has an optional YAML file and the command-line
// flags applied on top of it, in that order. Every layer is an Overrides value whose
// nil fields leave the current setting alone. The finished Config is validated once and
// then shared read-only by the producer, the template expander and the executor.
package config
