// Package metrics records build and stage metrics for postbuilder.
//
// Components receive a Recorder and default to NoopRecorder, so no call site
// needs a nil check. A build configured with build.metrics_file uses a
// PrometheusRecorder and writes its registry in the Prometheus text exposition
// format when the build finishes (suitable for the node_exporter textfile
// collector, since a batch build has no endpoint to scrape).
package metrics
