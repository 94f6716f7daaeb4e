package fdiag

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type (
	Level string
	// Entry is one diagnostic raised while decoding a record.
	Entry struct {
		Level    Level  `json:"level"`
		Ordinal  int    `json:"ordinal"`
		Field    string `json:"field,omitempty"`
		Position int    `json:"position,omitempty"`
		Message  string `json:"message"`
		Err      error  `json:"-"`
	}
	// Log collects diagnostics in the order they were raised. It is not safe for
	// concurrent use.
	Log struct {
		entries []Entry
		logger  *zap.Logger
	}
	Option func(*Log)
)

const (
	LevelErr  = Level("ERR")
	LevelInfo = Level("INFO")
)

// WithLogger mirrors every entry to l as it is added. Without it entries are only kept.
func WithLogger(l *zap.Logger) Option {
	return func(r *Log) {
		r.logger = l
	}
}

func New(opts ...Option) *Log {
	log := &Log{entries: []Entry{}}
	for _, opt := range opts {
		opt(log)
	}
	return log
}

func (r Entry) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s record %d", r.Level, r.Ordinal))
	if r.Field != "" {
		sb.WriteString(fmt.Sprintf(` field "%s"`, r.Field))
	}
	if r.Position > 0 {
		sb.WriteString(fmt.Sprintf(" position %d", r.Position))
	}
	sb.WriteString(": ")
	sb.WriteString(r.Message)
	return sb.String()
}

func (r *Log) Err(entry Entry) {
	entry.Level = LevelErr
	if entry.Message == "" && entry.Err != nil {
		entry.Message = entry.Err.Error()
	}
	r.add(entry)
}

func (r *Log) Info(entry Entry) {
	entry.Level = LevelInfo
	r.add(entry)
}

func (r *Log) add(entry Entry) {
	r.entries = append(r.entries, entry)
	if r.logger == nil {
		return
	}
	fields := []zap.Field{
		zap.Int("ordinal", entry.Ordinal),
		zap.String("field", entry.Field),
		zap.Int("position", entry.Position),
	}
	if entry.Err != nil {
		fields = append(fields, zap.Error(entry.Err))
	}
	if entry.Level == LevelErr {
		r.logger.Warn(entry.Message, fields...)
		return
	}
	r.logger.Info(entry.Message, fields...)
}

func (r *Log) Entries() []Entry {
	return append([]Entry{}, r.entries...)
}

func (r *Log) Errors() []Entry {
	return r.byLevel(LevelErr)
}

func (r *Log) Infos() []Entry {
	return r.byLevel(LevelInfo)
}

func (r *Log) byLevel(level Level) []Entry {
	return lo.Filter(r.entries, func(entry Entry, _ int) bool {
		return entry.Level == level
	})
}

// Messages renders the entries of one level as text lines.
func (r *Log) Messages(level Level) []string {
	return lo.Map(r.byLevel(level), func(entry Entry, _ int) string {
		return entry.String()
	})
}

func (r *Log) Len() int {
	return len(r.entries)
}

func (r *Log) Reset() {
	r.entries = []Entry{}
}
