package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// Formatter prints "time [level] file:line func message key=value ...".
type Formatter struct{}

func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(time.DateTime))
	fmt.Fprintf(&b, " [%s]", strings.ToLower(entry.Level.String()))

	if entry.HasCaller() {
		file := filepath.Base(entry.Caller.File)
		fn := entry.Caller.Function
		if i := strings.LastIndex(fn, "."); i >= 0 {
			fn = fn[i+1:]
		}
		fmt.Fprintf(&b, " %s:%d %s", file, entry.Caller.Line, fn)
	}
	b.WriteString(" ")
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// New builds a logger writing to stderr, and also to a daily rotated file
// under dir when dir is set.
func New(level, dir string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetReportCaller(true)
	l.Formatter = &Formatter{}

	if dir != "" {
		w, err := fileWriter(dir)
		if err != nil {
			return nil, err
		}
		l.SetOutput(io.MultiWriter(os.Stderr, w))
	}
	return l, nil
}

func fileWriter(dir string) (io.Writer, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	name := filepath.Base(os.Args[0])
	return rotatelogs.New(
		filepath.Join(dir, name+"-%Y%m%d.log"),
		rotatelogs.WithMaxAge(7*24*time.Hour),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
}

// Discard is a logger for tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
