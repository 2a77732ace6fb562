package metrics

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/cscan/pkg/logging/logfields"
)

// LoggingHook is a hook for logrus which counts error and warning messages as a
// Prometheus metric.
type LoggingHook struct {
	metric *prometheus.CounterVec
}

// NewLoggingHook returns a hook whose counter is registered with o.
func NewLoggingHook(o *Observer) *LoggingHook {
	h := &LoggingHook{
		metric: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_warnings_total",
			Help:      "Number of errors and warnings logged",
		}, []string{"level", "subsystem"}),
	}
	o.MustRegister(h.metric)
	return h
}

// Levels returns the list of logging levels on which the hook is triggered.
func (h *LoggingHook) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.ErrorLevel,
		logrus.WarnLevel,
	}
}

// Fire is called every time the logger has an error or warning message.
func (h *LoggingHook) Fire(entry *logrus.Entry) error {
	iSubsystem, ok := entry.Data[logfields.LogSubsys]
	if !ok {
		serializedEntry, err := entry.String()
		if err != nil {
			return errors.New("log entry cannot be serialized and doesn't contain 'subsys' field")
		}
		return errors.Errorf("log entry doesn't contain 'subsys' field: %s", serializedEntry)
	}
	subsystem, ok := iSubsystem.(string)
	if !ok {
		return errors.Errorf("type of the 'subsys' log entry field is not string but %s", reflect.TypeOf(iSubsystem))
	}

	h.metric.WithLabelValues(entry.Level.String(), subsystem).Inc()
	return nil
}
