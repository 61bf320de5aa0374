// Package vte implements the byte-level ANSI/VT parser described in the
// core specification: a state machine structurally identical to Paul
// Williams' DEC VT parser (https://vt100.net/emu/dec_ansi_parser), driving
// a Handler with print/execute/csi/esc/osc/dcs callbacks.
//
// The parser owns UTF-8 decoding of the Ground state's printable text: a
// non-ASCII lead byte starts a short internal collection that completes
// with a single Print call, matching the reference's "collect state until
// the code point is complete" behavior. Malformed continuation bytes are
// recovered by substituting the Unicode replacement character and resuming
// from the offending byte, never by raising an error.
package vte

import (
	"unicode"
	"unicode/utf8"
)

// Handler receives parser callbacks. Hook/Put/Unhook exist for DCS strings;
// the terminal core described by this module does not act on DCS content
// but still drives the states correctly so a DCS sequence never corrupts
// surrounding Ground/CSI parsing.
type Handler interface {
	Print(r rune)
	Execute(b byte)
	CsiDispatch(params *Params, intermediates []byte, ignore bool, final byte)
	EscDispatch(intermediates []byte, ignore bool, final byte)
	OscDispatch(params [][]byte, bellTerminated bool)
	Hook(params *Params, intermediates []byte, ignore bool, final byte)
	Put(b byte)
	Unhook()
}

const maxIntermediates = 2

// Parser is a byte-at-a-time VT/ANSI state machine. It is not safe for
// concurrent use; callers that need concurrency must serialize calls to
// Advance themselves (see the Console facade, which does exactly that).
type Parser struct {
	handler Handler
	state   state

	params       *Params
	intermediate []byte
	ignoring     bool

	osc        [][]byte
	oscCur     []byte
	oscEscSeen bool

	utf8Buf    [4]byte
	utf8Len    int
	utf8Remain int
}

// NewParser constructs a parser that will drive h.
func NewParser(h Handler) *Parser {
	return &Parser{
		handler:      h,
		state:        stateGround,
		params:       newParams(),
		intermediate: make([]byte, 0, maxIntermediates+1),
	}
}

// Advance feeds one byte into the state machine, issuing at most one
// callback to the Handler for it. A byte that interrupts an incomplete UTF-8
// sequence is preceded by one extra Print of the replacement character.
func (p *Parser) Advance(b byte) {
	if p.utf8Remain > 0 {
		if b&0xC0 == 0x80 {
			p.utf8Buf[p.utf8Len] = b
			p.utf8Len++
			p.utf8Remain--
			if p.utf8Remain == 0 {
				r, size := utf8.DecodeRune(p.utf8Buf[:p.utf8Len])
				if r == utf8.RuneError && size <= 1 {
					r = unicode.ReplacementChar
				}
				p.handler.Print(r)
				p.utf8Len = 0
			}
			return
		}
		// Malformed continuation: recover and reprocess b normally.
		p.utf8Remain = 0
		p.utf8Len = 0
		p.handler.Print(unicode.ReplacementChar)
	}

	switch p.state {
	case stateGround:
		p.advanceGround(b)
	case stateEscape:
		p.advanceEscape(b)
	case stateEscapeIntermediate:
		p.advanceEscapeIntermediate(b)
	case stateCsiEntry:
		p.advanceCsiEntry(b)
	case stateCsiParam:
		p.advanceCsiParam(b)
	case stateCsiIntermediate:
		p.advanceCsiIntermediate(b)
	case stateCsiIgnore:
		p.advanceCsiIgnore(b)
	case stateOscString:
		p.advanceOscString(b)
	case stateSosPmApcString:
		p.advanceSosPmApcString(b)
	case stateDcsEntry:
		p.advanceDcsEntry(b)
	case stateDcsParam:
		p.advanceDcsParam(b)
	case stateDcsIntermediate:
		p.advanceDcsIntermediate(b)
	case stateDcsPassthrough:
		p.advanceDcsPassthrough(b)
	case stateDcsIgnore:
		p.advanceDcsIgnore(b)
	}
}

// AdvanceString feeds an entire byte string, one byte at a time.
func (p *Parser) AdvanceString(s []byte) {
	for _, b := range s {
		p.Advance(b)
	}
}

func (p *Parser) toGround() {
	p.state = stateGround
}

func (p *Parser) clear() {
	p.params.reset()
	p.intermediate = p.intermediate[:0]
	p.ignoring = false
}

func (p *Parser) collectIntermediate(b byte) {
	if len(p.intermediate) >= maxIntermediates {
		p.ignoring = true
		return
	}
	p.intermediate = append(p.intermediate, b)
}

func (p *Parser) paramByte(b byte) {
	switch {
	case b >= '0' && b <= '9':
		n := p.params.Len()
		if n == 0 {
			p.params.pushParam(int64(b - '0'))
			return
		}
		last := p.params.values[n-1]
		sub := last[len(last)-1]
		last[len(last)-1] = sub*10 + int64(b-'0')
	case b == ';':
		if p.params.Len() >= maxParams {
			p.ignoring = true
			return
		}
		p.params.pushParam(0)
	case b == ':':
		p.params.extendLast(0)
	}
}

func (p *Parser) beginUTF8(lead byte) {
	switch {
	case lead&0xE0 == 0xC0:
		p.utf8Buf[0] = lead
		p.utf8Len = 1
		p.utf8Remain = 1
	case lead&0xF0 == 0xE0:
		p.utf8Buf[0] = lead
		p.utf8Len = 1
		p.utf8Remain = 2
	case lead&0xF8 == 0xF0:
		p.utf8Buf[0] = lead
		p.utf8Len = 1
		p.utf8Remain = 3
	default:
		p.handler.Print(unicode.ReplacementChar)
	}
}

func (p *Parser) advanceGround(b byte) {
	switch {
	case b == c0ESC:
		p.clear()
		p.state = stateEscape
	case isExecutable(b):
		p.handler.Execute(b)
	case b < 0x80:
		p.handler.Print(rune(b))
	default:
		p.beginUTF8(b)
	}
}

func (p *Parser) advanceEscape(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b == c0ESC:
		p.clear()
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = stateEscapeIntermediate
	case b == '[':
		p.clear()
		p.state = stateCsiEntry
	case b == ']':
		p.osc = p.osc[:0]
		p.oscCur = p.oscCur[:0]
		p.oscEscSeen = false
		p.state = stateOscString
	case b == 'P':
		p.clear()
		p.state = stateDcsEntry
	case b == 'X' || b == '^' || b == '_':
		p.state = stateSosPmApcString
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= 0x30 && b <= 0x7E:
		p.handler.EscDispatch(p.intermediate, p.ignoring, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) advanceEscapeIntermediate(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= 0x30 && b <= 0x7E:
		p.handler.EscDispatch(p.intermediate, p.ignoring, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) advanceCsiEntry(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= '0' && b <= '9', b == ';', b == ':':
		p.paramByte(b)
		p.state = stateCsiParam
	case b >= 0x3C && b <= 0x3F:
		p.collectIntermediate(b)
		p.state = stateCsiParam
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.handler.CsiDispatch(p.params, p.intermediate, p.ignoring, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiParam(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= '0' && b <= '9', b == ';', b == ':':
		p.paramByte(b)
	case b >= 0x3C && b <= 0x3F:
		p.ignoring = true
		p.state = stateCsiIgnore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = stateCsiIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.handler.CsiDispatch(p.params, p.intermediate, p.ignoring, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIntermediate(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x40 && b <= 0x7E:
		p.handler.CsiDispatch(p.params, p.intermediate, p.ignoring, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) advanceCsiIgnore(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.handler.Execute(b)
		p.toGround()
	case b <= 0x1F:
		p.handler.Execute(b)
	case b >= 0x40 && b <= 0x7E:
		p.toGround()
	}
}

func (p *Parser) advanceOscString(b byte) {
	if p.oscEscSeen {
		if b == '\\' {
			p.finishOsc(false)
			return
		}
		p.oscEscSeen = false
		// Not a valid ST: fall through and treat ESC as data loss, resume
		// collecting from this byte.
	}
	switch b {
	case c0BEL:
		p.finishOsc(true)
	case c0ESC:
		p.oscEscSeen = true
	case ';':
		p.osc = append(p.osc, p.oscCur)
		p.oscCur = make([]byte, 0, 16)
	case c0CAN, c0SUB:
		p.toGround()
	default:
		if b >= 0x20 || b == 0x09 {
			p.oscCur = append(p.oscCur, b)
		}
	}
}

func (p *Parser) finishOsc(bellTerminated bool) {
	p.osc = append(p.osc, p.oscCur)
	p.handler.OscDispatch(p.osc, bellTerminated)
	p.toGround()
}

func (p *Parser) advanceSosPmApcString(b byte) {
	switch b {
	case c0ESC:
		// ST is ESC '\': the '\' is consumed as an ESC dispatch.
		p.clear()
		p.state = stateEscape
	case c0CAN, c0SUB:
		p.toGround()
	}
}

func (p *Parser) advanceDcsEntry(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.toGround()
	case b >= '0' && b <= '9', b == ';', b == ':':
		p.paramByte(b)
		p.state = stateDcsParam
	case b >= 0x3C && b <= 0x3F:
		p.collectIntermediate(b)
		p.state = stateDcsParam
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.handler.Hook(p.params, p.intermediate, p.ignoring, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) advanceDcsParam(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.toGround()
	case b >= '0' && b <= '9', b == ';', b == ':':
		p.paramByte(b)
	case b >= 0x3C && b <= 0x3F:
		p.ignoring = true
		p.state = stateDcsIgnore
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
		p.state = stateDcsIntermediate
	case b >= 0x40 && b <= 0x7E:
		p.handler.Hook(p.params, p.intermediate, p.ignoring, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) advanceDcsIntermediate(b byte) {
	switch {
	case b == c0CAN || b == c0SUB:
		p.toGround()
	case b >= 0x20 && b <= 0x2F:
		p.collectIntermediate(b)
	case b >= 0x40 && b <= 0x7E:
		p.handler.Hook(p.params, p.intermediate, p.ignoring, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

var dcsTerminator = c0ESC

func (p *Parser) advanceDcsPassthrough(b byte) {
	switch b {
	case c0CAN, c0SUB:
		p.handler.Unhook()
		p.toGround()
	case dcsTerminator:
		p.handler.Unhook()
		// ST is ESC '\': the '\' is consumed as an ESC dispatch.
		p.clear()
		p.state = stateEscape
	default:
		p.handler.Put(b)
	}
}

func (p *Parser) advanceDcsIgnore(b byte) {
	switch b {
	case c0CAN, c0SUB:
		p.toGround()
	case c0ESC:
		p.clear()
		p.state = stateEscape
	}
}
