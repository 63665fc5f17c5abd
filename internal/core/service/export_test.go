package service

// ResetGlobal clears the process-wide Manager between tests.
func ResetGlobal() {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()
}

var CaptureStack = captureStack
