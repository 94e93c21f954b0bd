package ports

// ReportRecorder receives usage counters from the yield use case.
type ReportRecorder interface {
	RecordReport(report, calcMode string)
	RecordGoalLookupFailure()
}
