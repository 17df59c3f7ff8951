package models

// AggregatedMediaDetails is a media details record enriched with data from
// matched alternate providers. It is built once per aggregation call and is
// read-only afterward.
type AggregatedMediaDetails struct {
	MediaDetails `json:",inline"`

	// ContributingProviders lists every provider that supplied at least one
	// field, primary provider first.
	ContributingProviders []string `json:"contributingProviders"`

	// DataSourceAttribution maps a logical field name to the provider whose
	// value won the merge. Only fields filled or overwritten by a
	// non-primary provider are recorded.
	DataSourceAttribution map[string]string `json:"dataSourceAttribution,omitempty"`

	// MatchConfidences mirrors the confidence of each match used during
	// aggregation, keyed by provider ID.
	MatchConfidences map[string]float64 `json:"matchConfidences,omitempty"`
}
