/*

Package client exchanges native protocol frames with Cassandra-compatible endpoints.

Session is the main entry point for applications: Open a Session, then use Query, Prepare, Execute and Batch to
run statements. Session enforces a synchronous, single-request-at-a-time model on top of CqlClientConnection, which
remains available for lower-level use (handshake testing, raw frame exchange, server-side test harnesses).

*/
package client
