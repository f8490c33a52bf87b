//go:build !linux

package mem

// Process probes readability in a live process.
//
// No remote-read facility is wired up on this platform, so every probe
// reports unreadable. Hosts here should supply a Ranges prober built from
// their own target introspection instead.
type Process struct {
	pid int
}

// NewProcess returns a prober for pid. A pid of 0 refers to the calling
// process.
func NewProcess(pid int) *Process {
	return &Process{pid: pid}
}

// Readable always reports false on this platform.
func (p *Process) Readable(addr uint64) bool {
	return false
}
