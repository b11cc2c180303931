// Package simplelogger is a minimal printf-style debug log for diffrefine.
//
// Output goes to the writer installed with SetOutput, if any; otherwise it is appended to the file named by the DIFFREFINE_LOG_FILE environment variable. With
// neither, Log is a no-op, so library code may log freely.
package simplelogger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// EnvVar names the environment variable holding the log file path.
const EnvVar = "DIFFREFINE_LOG_FILE"

var (
	mu     sync.Mutex
	output io.Writer
)

// SetOutput directs Log to w (nil restores the DIFFREFINE_LOG_FILE behavior). It returns a func that restores the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return func() {
		mu.Lock()
		defer mu.Unlock()
		output = prev
	}
}

// Enabled reports whether Log currently writes anywhere. Callers may use it to skip building expensive arguments.
func Enabled() bool {
	mu.Lock()
	w := output
	mu.Unlock()
	return w != nil || os.Getenv(EnvVar) != ""
}

// Log formats a message and writes it as one line. If the path in DIFFREFINE_LOG_FILE can't be opened as a file, the message is dropped.
func Log(format string, args ...any) {
	// Serialize open/write/close to reduce interleaving within a single process (dirdiff logs from several goroutines).
	mu.Lock()
	defer mu.Unlock()

	w := output
	if w == nil {
		path := os.Getenv(EnvVar)
		if path == "" {
			return
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		w = f
	}

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = w.Write(b.Bytes())
}
