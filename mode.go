package vtcore

// Mode is a bitset of terminal mode flags toggled by CSI ? ... h/l (DECSET/
// DECRST). Only LineWrap, ShowCursor and AltScreen have any effect in this
// core; every other private mode number is recognized (parsed without
// error) but produces no state change, per the reference's "recognized but
// no-op" policy for modes outside its documented subset.
type Mode uint32

const (
	ModeLineWrap Mode = 1 << iota
	ModeShowCursor
	ModeAltScreen
)

func (m Mode) Has(mask Mode) bool   { return m&mask == mask }
func (m Mode) Set(mask Mode) Mode   { return m | mask }
func (m Mode) Clear(mask Mode) Mode { return m &^ mask }
