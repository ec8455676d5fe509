package program

// OffsetType defines the type of a program offset.
type OffsetType uint8

// offset types.
const (
	UnknownOffset   OffsetType = 0
	CodeOffset      OffsetType = 1 << iota
	DataOffset
	CodeAsData      // for jumps into instructions and unknown opcodes
	JumpDestination // offset is the target of a jump or skip
	CallDestination // offset is the destination of a call, indicating a subroutine
	DataReference   // offset is loaded into the index register
)

// IsType returns whether the offset is of given type.
func (o *Offset) IsType(typ OffsetType) bool {
	return o.Type&typ != 0
}

// SetType sets the type of the offset.
func (o *Offset) SetType(typ OffsetType) {
	o.Type |= typ
}

// ClearType unsets the type of the offset.
func (o *Offset) ClearType(typ OffsetType) {
	o.Type &^= typ
}
