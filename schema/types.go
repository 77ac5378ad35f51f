package schema

type (
	// EncodingKind classifies how a dimension participates in the row key.
	EncodingKind uint8

	// DataType is the logical type of a dimension's values. It only matters for
	// choosing the fallback default of a newly added raw dimension.
	DataType uint8
)

const (
	// KindSurrogate marks a dictionary/direct-encoded dimension whose small
	// integer surrogate is bit-packed into the fixed-length surrogate key.
	KindSurrogate EncodingKind = 0x1
	// KindRaw marks a dimension stored as a variable-length byte value in the
	// row's raw value array.
	KindRaw EncodingKind = 0x2
	// KindImplicit marks a system-generated dimension that never occupies a
	// slot in either key array.
	KindImplicit EncodingKind = 0x3
)

const (
	TypeString    DataType = 0x1 // TypeString is a UTF-8 text value.
	TypeVarchar   DataType = 0x2 // TypeVarchar is a long text value.
	TypeTimestamp DataType = 0x3 // TypeTimestamp is a microsecond timestamp.
	TypeInt       DataType = 0x4 // TypeInt is a 32-bit integer.
	TypeLong      DataType = 0x5 // TypeLong is a 64-bit integer.
	TypeDouble    DataType = 0x6 // TypeDouble is a 64-bit float.
	TypeBinary    DataType = 0x7 // TypeBinary is an opaque byte value.
)

func (k EncodingKind) String() string {
	switch k {
	case KindSurrogate:
		return "Surrogate"
	case KindRaw:
		return "Raw"
	case KindImplicit:
		return "Implicit"
	default:
		return "Unknown"
	}
}

func (t DataType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeVarchar:
		return "Varchar"
	case TypeTimestamp:
		return "Timestamp"
	case TypeInt:
		return "Int"
	case TypeLong:
		return "Long"
	case TypeDouble:
		return "Double"
	case TypeBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// IsText reports whether the type is text-like. Newly added raw dimensions of
// a text type default to the null member sentinel instead of empty bytes.
func (t DataType) IsText() bool {
	return t == TypeString || t == TypeVarchar
}
