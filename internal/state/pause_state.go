// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"glyph-defense/internal/assets"
	"glyph-defense/internal/config"
	"glyph-defense/internal/interfaces"
)

var _ State = (*PauseState)(nil)

// PauseState — жёсткая пауза поверх игры: предыдущий экран рисуется
// замороженным, симуляция не тикает вовсе.
type PauseState struct {
	sm            *StateMachine
	previousState State
	session       interfaces.Session
	wasActive     bool
}

func NewPauseState(sm *StateMachine, previous State, session interfaces.Session) *PauseState {
	return &PauseState{
		sm:            sm,
		previousState: previous,
		session:       session,
		wasActive:     session.CombatActive(),
	}
}

func (s *PauseState) Enter() {
	s.session.SetCombatActive(false)
}

func (s *PauseState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) ||
		inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.sm.SetState(s.previousState)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	if s.previousState != nil {
		s.previousState.Draw(screen)
	}

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)

	face := assets.Face(40)
	label := "PAUSED"
	bounds := text.BoundString(face, label)
	text.Draw(screen, label, face,
		(config.ScreenWidth-(bounds.Max.X-bounds.Min.X))/2,
		config.ScreenHeight/2, color.White)
}

// Exit возвращает бой в то состояние, в котором его застала пауза.
func (s *PauseState) Exit() {
	s.session.SetCombatActive(s.wasActive)
}
