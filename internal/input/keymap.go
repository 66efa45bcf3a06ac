package input

import "github.com/gdamore/tcell/v2"

// ActionForKey maps a terminal key event to a game action.
func ActionForKey(ev *tcell.EventKey) (Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp, true
	case tcell.KeyDown:
		return ActionDown, true
	case tcell.KeyLeft:
		return ActionLeft, true
	case tcell.KeyRight:
		return ActionRight, true
	case tcell.KeyEnter:
		return ActionAttack, true
	case tcell.KeyF1:
		return ActionInspect, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return ActionUp, true
		case 's', 'S':
			return ActionDown, true
		case 'a', 'A':
			return ActionLeft, true
		case 'd', 'D':
			return ActionRight, true
		case ' ':
			return ActionForceExit, true
		case 'q', 'Q':
			return ActionQuit, true
		}
	}
	return 0, false
}
