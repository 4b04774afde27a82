//go:build !linux

package main

import (
	"errors"

	"kcore/firmware"

	"github.com/Moonlight-Companies/gologger/logger"
)

func platformSource() (firmware.MemorySource, error) {
	return nil, errors.New("iomem source is only available on linux")
}

func logBanner(log *logger.Logger) {}
