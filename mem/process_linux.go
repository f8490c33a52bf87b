//go:build linux

package mem

import "golang.org/x/sys/unix"

// Process probes readability in a live process by issuing a one-byte
// process_vm_readv for each query. No page state is cached: a probe reflects
// the mapping at the moment it runs, which is what a debugger wants while
// the target keeps mapping and unmapping regions.
type Process struct {
	pid int
}

// NewProcess returns a prober for pid. A pid of 0 probes the calling
// process.
func NewProcess(pid int) *Process {
	if pid == 0 {
		pid = unix.Getpid()
	}
	return &Process{pid: pid}
}

// Readable reports whether one byte at addr can be read from the target.
func (p *Process) Readable(addr uint64) bool {
	var buf [1]byte
	local := unix.Iovec{Base: &buf[0]}
	local.SetLen(1)
	remote := unix.RemoteIovec{Base: uintptr(addr), Len: 1}

	n, err := unix.ProcessVMReadv(p.pid, []unix.Iovec{local}, []unix.RemoteIovec{remote}, 0)
	return err == nil && n == 1
}
