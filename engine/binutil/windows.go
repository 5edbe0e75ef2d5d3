//go:build windows
// +build windows

package binutil

import "github.com/r-lodahl/Illarion-Server/engine/gwlog"

type nopRelease int

func (_ nopRelease) Release() error {
	return nil
}

func Daemonize() nopRelease {
	// Windows can not daemonize
	gwlog.Warnf("can not run in daemon mode in windows, -d ignored")
	return nopRelease(0)
}
