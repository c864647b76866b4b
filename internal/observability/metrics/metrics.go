package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters for the dialogue turn loop.
type ConversationMetrics struct {
	turnsTotal       *prometheus.CounterVec
	modelCallsTotal  *prometheus.CounterVec
	extractionSkips  prometheus.Counter
	followUpActions  *prometheus.CounterVec
	directoryMatches *prometheus.CounterVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total processed conversation turns",
		}, []string{"path"}),
		modelCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Subsystem: "conversation",
			Name:      "model_calls_total",
			Help:      "Total model completion calls",
		}, []string{"kind", "status"}),
		extractionSkips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "outreach",
			Subsystem: "conversation",
			Name:      "extraction_skips_total",
			Help:      "Extraction attempts skipped due to model or parse failure",
		}),
		followUpActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Subsystem: "followup",
			Name:      "actions_total",
			Help:      "Follow-up actions dispatched at session end",
		}, []string{"action"}),
		directoryMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "outreach",
			Subsystem: "directory",
			Name:      "lookups_total",
			Help:      "Caller lookups against the pharmacy directory",
		}, []string{"result"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.modelCallsTotal, m.extractionSkips, m.followUpActions, m.directoryMatches)
	return m
}

// ObserveTurn counts one processed turn on the given path
// ("returning" or "lead").
func (m *ConversationMetrics) ObserveTurn(path string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(path).Inc()
}

// ObserveModelCall counts one model call by kind ("reply" or "extract")
// and status ("ok" or "error").
func (m *ConversationMetrics) ObserveModelCall(kind, status string) {
	if m == nil {
		return
	}
	m.modelCallsTotal.WithLabelValues(kind, status).Inc()
}

// ObserveExtractionSkip counts one silently skipped extraction.
func (m *ConversationMetrics) ObserveExtractionSkip() {
	if m == nil {
		return
	}
	m.extractionSkips.Inc()
}

// ObserveFollowUpAction counts one dispatched follow-up action.
func (m *ConversationMetrics) ObserveFollowUpAction(action string) {
	if m == nil {
		return
	}
	m.followUpActions.WithLabelValues(action).Inc()
}

// ObserveDirectoryLookup counts one caller lookup ("match" or "miss").
func (m *ConversationMetrics) ObserveDirectoryLookup(result string) {
	if m == nil {
		return
	}
	m.directoryMatches.WithLabelValues(result).Inc()
}
