//go:build linux

package main

import (
	"kcore/firmware"
	"kcore/firmware_linux"

	"github.com/Moonlight-Companies/gologger/logger"

	"golang.org/x/sys/unix"
)

func platformSource() (firmware.MemorySource, error) {
	return firmware_linux.New(), nil
}

// logBanner prints a host identification line after the boot banner.
func logBanner(log *logger.Logger) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return
	}
	log.Infoln("Host:", cstr(uts.Sysname[:]), cstr(uts.Release[:]), cstr(uts.Machine[:]))
}

func cstr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
