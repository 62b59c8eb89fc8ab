// Package grpc serves salonbook.v1.Salonbook over gRPC.
//
// Messages are plain Go structs carried by the codec registered under the
// "json" content-subtype, so requests must be sent as application/grpc+json.
// Client does this on every call; other callers add
// grpc.CallContentSubtype("json") to their call options. A caller using the
// default proto codec cannot decode these messages and gets an error. The
// grpc.health.v1 service on the same server accepts either codec.
package grpc
