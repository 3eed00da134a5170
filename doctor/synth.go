package doctor

import (
	"fmt"
	"runtime"
	"time"

	"github.com/micmonay/keybd_event"

	"tradetools/shortcut"
)

// uinput devices need a moment before the system routes their events.
const uinputSettle = 2 * time.Second

var synthKeys = map[shortcut.Key]int{
	'A': keybd_event.VK_A, 'B': keybd_event.VK_B, 'C': keybd_event.VK_C, 'D': keybd_event.VK_D,
	'E': keybd_event.VK_E, 'F': keybd_event.VK_F, 'G': keybd_event.VK_G, 'H': keybd_event.VK_H,
	'I': keybd_event.VK_I, 'J': keybd_event.VK_J, 'K': keybd_event.VK_K, 'L': keybd_event.VK_L,
	'M': keybd_event.VK_M, 'N': keybd_event.VK_N, 'O': keybd_event.VK_O, 'P': keybd_event.VK_P,
	'Q': keybd_event.VK_Q, 'R': keybd_event.VK_R, 'S': keybd_event.VK_S, 'T': keybd_event.VK_T,
	'U': keybd_event.VK_U, 'V': keybd_event.VK_V, 'W': keybd_event.VK_W, 'X': keybd_event.VK_X,
	'Y': keybd_event.VK_Y, 'Z': keybd_event.VK_Z,
	'0': keybd_event.VK_0, '1': keybd_event.VK_1, '2': keybd_event.VK_2, '3': keybd_event.VK_3,
	'4': keybd_event.VK_4, '5': keybd_event.VK_5, '6': keybd_event.VK_6, '7': keybd_event.VK_7,
	'8': keybd_event.VK_8, '9': keybd_event.VK_9,
	shortcut.KeySpace: keybd_event.VK_SPACE,
}

// synthesize presses and releases b through the OS input layer.
func synthesize(b shortcut.Binding) error {
	vk, ok := synthKeys[b.Key()]
	if !ok {
		return fmt.Errorf("%w: %s", shortcut.ErrInvalid, b)
	}
	if b.Has(shortcut.ModSuper) {
		return fmt.Errorf("cannot synthesize %s: Super is not supported", b)
	}

	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	if runtime.GOOS == "linux" {
		time.Sleep(uinputSettle)
	}

	kb.SetKeys(vk)
	kb.HasCTRL(b.Has(shortcut.ModCtrl))
	kb.HasSHIFT(b.Has(shortcut.ModShift))
	kb.HasALT(b.Has(shortcut.ModAlt))
	return kb.Launching()
}
