// Package hscan is a pure-Go multi-pattern scanning engine with block,
// vectored and streaming modes over an opaque compiled database.
//
// A compiled database is immutable and shared freely across goroutines.
// Every scan needs a Scratch sized for the database it runs against; one
// scratch serves one scanning operation at a time. Matches are delivered
// synchronously to a MatchHandler, in discovery order, strictly before the
// scan call returns; the handler can stop a scan early by returning false,
// which surfaces as ErrScanTerminated.
package hscan
