//go:build !linux && !darwin && !windows

package shortcut

type unsupportedSource struct {
	binding Binding
}

func New(b Binding) Source { return unsupportedSource{binding: b} }

func (u unsupportedSource) Binding() Binding         { return u.binding }
func (u unsupportedSource) Register() error          { return ErrUnsupported }
func (u unsupportedSource) Unregister()              {}
func (u unsupportedSource) Keydown() <-chan struct{} { return nil }
func (u unsupportedSource) Keyup() <-chan struct{}   { return nil }

func Diagnose(Binding) (string, error) { return "", ErrUnsupported }
