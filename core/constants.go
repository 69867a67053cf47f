package core

// HTTP-related constants for endpoint declarations
// These constants provide type-safe header names and content types

// HTTP Header Names
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
)

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeMsgpack   = "application/msgpack"
	ContentTypeTextPlain = "text/plain"
)
