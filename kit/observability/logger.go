package observability

import (
	"fmt"
	"log"
	"os"
	"strings"
)

type Logger struct {
	l *log.Logger
}

func NewLogger() *Logger {
	return &Logger{l: log.New(os.Stdout, "", log.LstdFlags|log.LUTC)}
}

func (lg *Logger) Info(msg string, kv ...any) {
	lg.l.Println("INFO", msg, format(kv))
}

func (lg *Logger) Error(msg string, kv ...any) {
	lg.l.Println("ERROR", msg, format(kv))
}

func format(kv []any) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
