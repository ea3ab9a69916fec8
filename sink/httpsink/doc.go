// Package httpsink provides a sink that POSTs batches of records to an
// HTTP ingest endpoint.
//
// Records are buffered until BatchSize is reached or the dispatcher
// flushes, then sent as one JSON array. Each request carries:
//
//	Content-Type: application/json
//	Content-Encoding: gzip | zstd   (when Compression is set)
//	Authorization: Bearer <APIKey>  (when APIKey is set)
//	X-Service-Name: <Service>       (when Service is set)
//	X-Instance-ID: <uuid>
//
// The instance id is generated once per sink unless configured. Any
// non-2xx response is returned as a *StatusError. Failed batches are
// dropped, not retried.
package httpsink
