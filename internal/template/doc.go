// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package template turns raw input into commands ready to spawn.
//
// In line mode each input line becomes at most one Command. In arguments mode the
// command-line tokens are split on ":::" and the groups are expanded as a Cartesian
// product, one Command per combination.
package template
