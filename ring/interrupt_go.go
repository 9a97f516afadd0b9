//go:build !tinygo

package ring

// There are no interrupts to disable when running as a regular process.
type interruptState uintptr

func disableInterrupts() interruptState {
	return 0
}

func restoreInterrupts(state interruptState) {
}
