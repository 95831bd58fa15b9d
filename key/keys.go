// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Series Matching - these keys tune the decision rule that groups episodes into the same series.
const (
	MatchSimilarityThreshold = "match.similarity_threshold"
)

// Page Scanning - these keys govern the source-page discovery protocol.
const (
	ScanInjectionDelayMs = "scan.injection_delay_ms"
	ScanFetchTimeoutSec  = "scan.fetch_timeout_sec"
)

// History Tracking - these keys configure the persistence of watch progress state.
const (
	HistorySaveOnWatch          = "history.save_on_watch"
	HistoryCompletionPercentage = "history.completion_percentage"
)

// Suggestions - these keys configure fuzzy series-name suggestions over the watch history.
const (
	SuggestEnabled = "suggest.enabled"
	SuggestLimit   = "suggest.limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern CLI behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
