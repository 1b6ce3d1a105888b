package stacktrace

import (
	"runtime"
	"strconv"
	"strings"
)

const maxDepth = 32

// Internal returns the caller's stack as "internal/<pkg>/<file>.go:<line>"
// entries, dropping frames outside this module's internal tree. skip counts
// frames above the caller of Internal.
func Internal(skip int) []string {
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	out := make([]string, 0, n)
	for {
		f, more := frames.Next()
		if p, ok := trimInternal(f.File); ok {
			out = append(out, p+":"+strconv.Itoa(f.Line))
		}
		if !more {
			break
		}
	}

	return out
}

func trimInternal(file string) (string, bool) {
	idx := strings.LastIndex(file, "/internal/")
	if idx == -1 {
		return "", false
	}
	return file[idx+1:], true
}
