//go:build windows

package browser

import "syscall"

// detach configures the child process to survive independently of this
// process's console session.
func detach(attr *syscall.SysProcAttr) {
	attr.CreationFlags = syscall.CREATE_NEW_PROCESS_GROUP
}
