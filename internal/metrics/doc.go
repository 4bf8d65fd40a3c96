// Package metrics records generation metrics.
//
// Components take a Recorder. NoopRecorder is the default; PrometheusRecorder
// collects into a private registry that can be written as a node-exporter
// textfile after each run:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	rec.IncRunOutcome(metrics.OutcomeSuccess)
//	_ = rec.WriteTextfile("/var/lib/node_exporter/mapidoc.prom")
package metrics
