// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !unix

package process

import (
	"errors"
	"os"
	"os/exec"
)

func setProcAttr(_ *exec.Cmd) {}

func killTree(c *exec.Cmd) error {
	if c.Process == nil {
		return nil
	}

	if err := c.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err //nolint:wrapcheck
	}

	return nil
}
