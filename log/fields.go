package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

type fieldType int

const (
	fieldTypeBool fieldType = iota
	fieldTypeString
	fieldTypeHex8
	fieldTypeHex16
	fieldTypeInt
	fieldTypeError
)

type zField struct {
	typ fieldType
	key string

	// Possible values. Only one of these is populated, depending on typ.
	str     string
	integer uint64
	err     error
	boolean bool
}

func (f *zField) value() string {
	switch f.typ {
	case fieldTypeBool:
		if f.boolean {
			return "true"
		}
		return "false"
	case fieldTypeString:
		return f.str
	case fieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.integer))
	case fieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.integer))
	case fieldTypeInt:
		return fmt.Sprintf("%d", int64(f.integer))
	case fieldTypeError:
		if f.err == nil {
			return "<nil>"
		}
		return f.err.Error()
	}
	return ""
}

// EntryZ is a typed field builder. A nil EntryZ (filtered-out module or
// level) swallows all calls, so call sites pay nothing when disabled.
type EntryZ struct {
	mod   Module
	lvl   Level
	msg   string
	zfbuf [8]zField
	zfidx int
}

func newEntryZ() *EntryZ {
	return &EntryZ{}
}

func (e *EntryZ) addField(f zField) *EntryZ {
	if e == nil || e.zfidx >= len(e.zfbuf) {
		return e
	}
	e.zfbuf[e.zfidx] = f
	e.zfidx++
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ {
	return e.addField(zField{typ: fieldTypeString, key: key, str: val})
}

func (e *EntryZ) Hex8(key string, val uint8) *EntryZ {
	return e.addField(zField{typ: fieldTypeHex8, key: key, integer: uint64(val)})
}

func (e *EntryZ) Hex16(key string, val uint16) *EntryZ {
	return e.addField(zField{typ: fieldTypeHex16, key: key, integer: uint64(val)})
}

func (e *EntryZ) Int(key string, val int64) *EntryZ {
	return e.addField(zField{typ: fieldTypeInt, key: key, integer: uint64(val)})
}

func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	return e.addField(zField{typ: fieldTypeBool, key: key, boolean: val})
}

func (e *EntryZ) Error(key string, err error) *EntryZ {
	return e.addField(zField{typ: fieldTypeError, key: key, err: err})
}

// End emits the entry.
func (e *EntryZ) End() {
	if e == nil {
		return
	}

	fields := make(logrus.Fields, e.zfidx+1)
	fields["_mod"] = modNames[e.mod]
	for i := range e.zfbuf[:e.zfidx] {
		fields[e.zfbuf[i].key] = e.zfbuf[i].value()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	case PanicLevel:
		entry.Panic(e.msg)
	}
}
