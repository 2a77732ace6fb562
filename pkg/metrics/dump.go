package metrics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Dump writes every sample gathered from g as a table of metric name with
// labels and value. Families come out sorted by name as the gatherer
// returns them.
func Dump(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}

	tw := tabwriter.NewWriter(w, 5, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Metric\tValue")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(tw, "%s%s\t%s\n", mf.GetName(), labelString(m.GetLabel()), valueString(mf.GetType(), m))
		}
	}
	return tw.Flush()
}

func labelString(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		parts = append(parts, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func valueString(typ dto.MetricType, m *dto.Metric) string {
	var v float64
	switch typ {
	case dto.MetricType_COUNTER:
		v = m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		v = m.GetGauge().GetValue()
	case dto.MetricType_UNTYPED:
		v = m.GetUntyped().GetValue()
	case dto.MetricType_SUMMARY:
		return fmt.Sprintf("count=%d sum=%s", m.GetSummary().GetSampleCount(), formatFloat(m.GetSummary().GetSampleSum()))
	case dto.MetricType_HISTOGRAM:
		return fmt.Sprintf("count=%d sum=%s", m.GetHistogram().GetSampleCount(), formatFloat(m.GetHistogram().GetSampleSum()))
	}
	return formatFloat(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
