// Package cpu exposes the OS-thread level controls used by the detached
// thread strategy: CPU pinning and thread identification.
package cpu
