package vtcore

// BellProvider is notified when the core executes a BEL (0x07). It never
// affects grid state; the default does nothing.
type BellProvider interface {
	Bell()
}

// NopBellProvider is the default BellProvider.
type NopBellProvider struct{}

func (NopBellProvider) Bell() {}

// TitleProvider is notified when OSC 0/1/2 set the window title. It never
// affects grid state; the default does nothing.
type TitleProvider interface {
	SetTitle(title string)
}

// NopTitleProvider is the default TitleProvider.
type NopTitleProvider struct{}

func (NopTitleProvider) SetTitle(string) {}

var (
	_ BellProvider  = NopBellProvider{}
	_ TitleProvider = NopTitleProvider{}
)
