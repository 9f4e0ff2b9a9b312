//go:build !windows

package browser

import "syscall"

// detach configures the child process to survive independently of this
// process's session, so closing the bridge never takes the browser down.
func detach(attr *syscall.SysProcAttr) {
	attr.Setsid = true
}
