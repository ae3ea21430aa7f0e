package eventbus

import (
	"github.com/permlattice/permlattice/internal/permission"
	"github.com/sirupsen/logrus"
)

// LogOutput writes every dispatched event as a structured logrus
// entry. The CLI registers it unconditionally, alongside the audit
// store when that is enabled, so events are always at least visible
// somewhere.
type LogOutput struct {
	log *logrus.Entry
}

// NewLogOutput wraps a logrus logger (or the package default, if nil)
// as an Output.
func NewLogOutput(log *logrus.Logger) *LogOutput {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogOutput{log: log.WithField("component", "eventbus")}
}

func (o *LogOutput) Write(e *permission.Event) error {
	entry := o.log.WithFields(logrus.Fields{
		"kind":      e.Kind.String(),
		"holder":    e.ObjectName,
		"transient": e.Transient,
	})
	if e.Kind == permission.GroupRemove {
		entry = entry.WithField("group", e.GroupName)
	} else {
		entry = entry.WithField("permission", e.Node.Permission())
	}
	entry.Info("permission event")
	return nil
}

func (o *LogOutput) Close() error { return nil }
