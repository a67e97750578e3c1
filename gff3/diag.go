package gff3

import (
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the diagnostic sink the engine routes warn/die messages
// through. *charmlog.Logger satisfies it directly; callers that want a
// structured, leveled sink with zero adaptation can pass one in via
// Config.Logger, the way BuBitt-DRD4-F2 wires charmbracelet/log through its
// own call stack.
type Logger interface {
	Warn(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
}

// diagSink wraps a Logger (defaulting to a silent one) with the structured
// fields every diagnostic in this package carries: feature type, ID, line
// number where relevant, and the rule/relation for structural failures
// (§7).
type diagSink struct {
	logger Logger
}

func newDiagSink(l Logger) *diagSink {
	if l == nil {
		l = charmlog.New(io.Discard)
	}
	return &diagSink{logger: l}
}

func (d *diagSink) warn(msg string, keyvals ...interface{}) {
	d.logger.Warn(msg, keyvals...)
}

func (d *diagSink) die(msg string, keyvals ...interface{}) {
	d.logger.Error(msg, keyvals...)
}

// warnNode logs a warning carrying the node's type/ID, per §7's diagnostic
// field requirements.
func (d *diagSink) warnNode(msg string, n *Node, extra ...interface{}) {
	kv := append([]interface{}{"type", n.Type, "id", n.ID}, extra...)
	d.warn(msg, kv...)
}

func (d *diagSink) dieNode(msg string, n *Node, extra ...interface{}) {
	kv := append([]interface{}{"type", n.Type, "id", n.ID}, extra...)
	d.die(msg, kv...)
}
