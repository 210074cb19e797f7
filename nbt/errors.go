package nbt

import "errors"

// Malformed documents surface one of these, wrapped with context, so callers
// can classify failures with errors.Is. Truncated input is reported as
// io.ErrUnexpectedEOF instead, keeping "file looks cut off" distinguishable
// from "file is garbage".
var ErrUnknownTagType = errors.New("nbt: unknown tag type")
var ErrRootNotCompound = errors.New("nbt: root tag must be a compound")
var ErrMixedList = errors.New("nbt: mixed tag types in list")
var ErrStringTooLong = errors.New("nbt: string longer than 65535 bytes")
var ErrNegativeLength = errors.New("nbt: negative length")
