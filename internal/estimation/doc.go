// Package estimation computes project cost/timeline estimates and ROI projections.
//
// Every estimate is a pure function of its request and a RateTable. Rate tables are
// immutable once built; callers that need to change pricing build a new table and swap it in.
package estimation
