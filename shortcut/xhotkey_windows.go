package shortcut

import "golang.design/x/hotkey"

func xModifier(m Modifier) (hotkey.Modifier, bool) {
	switch m {
	case ModCtrl:
		return hotkey.ModCtrl, true
	case ModShift:
		return hotkey.ModShift, true
	case ModAlt:
		return hotkey.ModAlt, true
	case ModSuper:
		return hotkey.ModWin, true
	}
	return 0, false
}
