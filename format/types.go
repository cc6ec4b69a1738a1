// Package format defines the small enumerations shared by the ncs packages.
package format

import (
	"fmt"
	"strings"
)

type (
	// BackendType selects a block decompressor backend.
	BackendType uint8
	// BlockCodec selects the block algorithm used by the bundled backend.
	BlockCodec uint8
	// FieldType is the wire type named by one format code character.
	FieldType uint8
	// Strategy selects how a table's records are decoded.
	Strategy uint8
	// EntryForm identifies which entry-section byte pattern a content header matched.
	EntryForm uint8
)

const (
	BackendBundled  BackendType = 0x1 // BackendBundled is the in-process open decompressor.
	BackendNative   BackendType = 0x2 // BackendNative loads the vendor library dynamically.
	BackendExec     BackendType = 0x3 // BackendExec talks to a helper process over stdin/stdout.
	BackendPipeExec BackendType = 0x4 // BackendPipeExec talks to a helper process over named pipes.

	CodecLZ4  BlockCodec = 0x1 // CodecLZ4 is the LZ4 block format.
	CodecS2   BlockCodec = 0x2 // CodecS2 is the S2 block format.
	CodecZstd BlockCodec = 0x3 // CodecZstd is a Zstandard frame.
	CodecNone BlockCodec = 0x4 // CodecNone copies stored blocks.

	FieldUnknown    FieldType = 0x0
	FieldPair       FieldType = 0x1 // 'a'
	FieldU32        FieldType = 0x2 // 'b'
	FieldU32F32     FieldType = 0x3 // 'c'
	FieldList       FieldType = 0x4 // 'd', 'e', 'f'
	FieldComplex    FieldType = 0x5 // 'h', 'i'
	FieldDepEntries FieldType = 0x6 // 'j'
	FieldNested     FieldType = 0x7 // 'l'
	FieldVariant    FieldType = 0x8 // 'p'

	StrategyAuto         Strategy = 0x0
	StrategySchema       Strategy = 0x1
	StrategyDifferential Strategy = 0x2

	EntryDefault  EntryForm = 0x0 // no pattern matched, one column assumed
	EntrySimple   EntryForm = 0x1 // 01 <strings> c<fields>
	EntryExtended EntryForm = 0x2 // <strings> <fields> 01
	EntryDirect   EntryForm = 0x3 // 01 <fields> <byte below 0xc0>
	EntryFallback EntryForm = 0x4 // c<fields> found within the next 8 bytes
)

func (b BackendType) String() string {
	switch b {
	case BackendBundled:
		return "bundled"
	case BackendNative:
		return "native"
	case BackendExec:
		return "exec"
	case BackendPipeExec:
		return "pipe-exec"
	default:
		return "unknown"
	}
}

// ParseBackendType parses the configuration spelling of a backend.
func ParseBackendType(s string) (BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bundled":
		return BackendBundled, nil
	case "native":
		return BackendNative, nil
	case "exec":
		return BackendExec, nil
	case "pipe-exec", "pipe_exec", "pipeexec":
		return BackendPipeExec, nil
	default:
		return 0, fmt.Errorf("unknown backend type %q", s)
	}
}

func (c BlockCodec) String() string {
	switch c {
	case CodecLZ4:
		return "lz4"
	case CodecS2:
		return "s2"
	case CodecZstd:
		return "zstd"
	case CodecNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseBlockCodec parses the configuration spelling of a bundled block codec.
func ParseBlockCodec(s string) (BlockCodec, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lz4":
		return CodecLZ4, nil
	case "s2":
		return CodecS2, nil
	case "zstd":
		return CodecZstd, nil
	case "none":
		return CodecNone, nil
	default:
		return 0, fmt.Errorf("unknown block codec %q", s)
	}
}

// FieldTypeOf maps a format code character to its field type.
func FieldTypeOf(c byte) FieldType {
	switch c {
	case 'a':
		return FieldPair
	case 'b':
		return FieldU32
	case 'c':
		return FieldU32F32
	case 'd', 'e', 'f':
		return FieldList
	case 'h', 'i':
		return FieldComplex
	case 'j':
		return FieldDepEntries
	case 'l':
		return FieldNested
	case 'p':
		return FieldVariant
	default:
		return FieldUnknown
	}
}

func (f FieldType) String() string {
	switch f {
	case FieldPair:
		return "Pair"
	case FieldU32:
		return "U32"
	case FieldU32F32:
		return "U32F32"
	case FieldList:
		return "List"
	case FieldComplex:
		return "Complex"
	case FieldDepEntries:
		return "DepEntries"
	case FieldNested:
		return "Nested"
	case FieldVariant:
		return "Variant"
	default:
		return "Unknown"
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyAuto:
		return "auto"
	case StrategySchema:
		return "schema"
	case StrategyDifferential:
		return "differential"
	default:
		return "unknown"
	}
}

// ParseStrategy parses the configuration spelling of a decode strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "schema":
		return StrategySchema, nil
	case "differential":
		return StrategyDifferential, nil
	default:
		return 0, fmt.Errorf("unknown decode strategy %q", s)
	}
}

func (e EntryForm) String() string {
	switch e {
	case EntryDefault:
		return "default"
	case EntrySimple:
		return "simple"
	case EntryExtended:
		return "extended"
	case EntryDirect:
		return "direct"
	case EntryFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// FixedColumns reports whether the entry form frames entries with a fixed
// per-entry column count.
func (e EntryForm) FixedColumns() bool {
	return e == EntrySimple || e == EntryExtended
}
