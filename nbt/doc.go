// Package nbt implements the Named Binary Tag document format: a
// self-describing, recursively typed binary tree used both for standalone
// files and for the chunk payloads embedded in Anvil region containers.
//
// Documents decode into an explicit tree of Tag values that the caller may
// mutate in place and re-encode. All multi-byte values are big-endian on the
// wire. Standalone files are conventionally gzip-compressed; DetectCompression
// and ReadDocument take care of the framing.
package nbt
