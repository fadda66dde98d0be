// Package types defines the column-role configuration model for tabular
// datasets: the tag registry, tag sets, columns, column sets and data
// configurations, together with the state inference engine that classifies
// a dataset's processing stage against its configuration.
//
// Configuration values are validated on construction and are immutable
// afterwards. State is always derived; callers recompute it whenever the
// observed column set changes.
package types
