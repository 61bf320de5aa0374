package vte

// state is one node of the byte-level parser, structurally identical to
// Paul Williams' DEC VT parser state diagram (https://vt100.net/emu/dec_ansi_parser).
type state int

const (
	stateGround state = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateSosPmApcString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
)

// C0 control byte constants (ECMA-48), named where the core dispatch table
// cares about them and left numeric otherwise.
const (
	c0NUL byte = 0x00
	c0BEL byte = 0x07
	c0BS  byte = 0x08
	c0HT  byte = 0x09
	c0LF  byte = 0x0A
	c0VT  byte = 0x0B
	c0FF  byte = 0x0C
	c0CR  byte = 0x0D
	c0SO  byte = 0x0E
	c0SI  byte = 0x0F
	c0CAN byte = 0x18
	c0SUB byte = 0x1A
	c0ESC byte = 0x1B
	c0DEL byte = 0x7F
)

func isExecutable(b byte) bool {
	return b <= 0x1F || b == c0DEL
}
