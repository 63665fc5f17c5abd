package service

import (
	"bytes"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

// loggingPackage is the prefix of every function that belongs to the
// dispatch path. Frames matching it are cut from captured traces so the
// innermost frame is always the caller's.
var loggingPackage = reflect.TypeOf(Manager{}).PkgPath() + "."

// captureStack returns up to depth frames above the logging call, innermost
// first. depth 0 yields an empty slice; a negative depth yields every frame.
func captureStack(depth int) []string {
	if depth == 0 {
		return []string{}
	}

	pcs := make([]uintptr, 32)
	var n int
	for {
		n = runtime.Callers(2, pcs)
		if n < len(pcs) {
			break
		}
		pcs = make([]uintptr, len(pcs)*2)
	}

	all := make([]runtime.Frame, 0, n)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		all = append(all, f)
		if !more {
			break
		}
	}

	// Drop everything up to the outermost frame of the logging package.
	start := 0
	for i := len(all) - 1; i >= 0; i-- {
		if strings.HasPrefix(all[i].Function, loggingPackage) {
			start = i + 1
			break
		}
	}
	valid := all[start:]

	if depth > 0 && depth < len(valid) {
		valid = valid[:depth]
	}
	out := make([]string, len(valid))
	for i, f := range valid {
		out[i] = frameString(f)
	}
	return out
}

func frameString(f runtime.Frame) string {
	fn := f.Function
	if fn == "" {
		fn = "unknown"
	}
	return fn + "(" + filepath.Base(f.File) + ":" + strconv.Itoa(f.Line) + ")"
}

// goroutineInfo identifies the calling goroutine, e.g. "Thread: goroutine 18".
func goroutineInfo() string {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := buf[:n]
	if i := bytes.IndexByte(line, '['); i > 0 {
		line = line[:i]
	}
	return "Thread: " + strings.TrimSpace(string(line))
}
