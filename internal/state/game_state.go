// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"glyph-defense/internal/app"
	"glyph-defense/internal/assets"
	"glyph-defense/internal/component"
	"glyph-defense/internal/config"
	"glyph-defense/internal/defs"
	"glyph-defense/internal/stats"
	"glyph-defense/internal/system"
	"glyph-defense/internal/types"
	"glyph-defense/internal/ui"
	"glyph-defense/pkg/geom"
	"glyph-defense/pkg/logger"
)

// GameState — игровой экран: владеет партией, отрисовщиком и HUD.
type GameState struct {
	sm   *StateMachine
	game *app.Game

	render          *system.RenderSystem
	buildBar        *ui.BuildBar
	infoPanel       *ui.InfoPanel
	speedButton     *ui.SpeedButton
	pauseButton     *ui.PauseButton
	waveIndicator   *ui.WaveIndicator
	statusIndicator *ui.StatusIndicator

	selected types.EntityID // выбранная башня
	linkFrom types.EntityID // источник строящейся линии снабжения

	face    font.Face
	bigFace font.Face
}

func NewGameState(sm *StateMachine, stageID string, endless bool) *GameState {
	gameLogic, err := app.NewGame(stageID, app.Options{Endless: endless})
	if err != nil {
		logger.Log.Fatalf("Failed to start game: %v", err)
	}

	render := system.NewRenderSystem(gameLogic.ECS, gameLogic.Path)
	render.SetLinkSource(func() [][2]types.EntityID {
		links := gameLogic.Network().Links()
		out := make([][2]types.EntityID, len(links))
		for i, l := range links {
			out[i] = [2]types.EntityID{l.From, l.To}
		}
		return out
	})

	face := assets.Face(14)
	return &GameState{
		sm:              sm,
		game:            gameLogic,
		render:          render,
		buildBar:        ui.NewBuildBar(assets.Face(16), assets.Face(10)),
		infoPanel:       ui.NewInfoPanel(face, assets.Face(17)),
		speedButton:     ui.NewSpeedButton(config.ScreenWidth-46, 40, 16, config.SpeedButtonColors, assets.Face(11)),
		pauseButton:     ui.NewPauseButton(config.ScreenWidth-104, 40, 14, color.RGBA{220, 220, 230, 255}, color.RGBA{110, 220, 110, 255}),
		waveIndicator:   ui.NewWaveIndicator(config.ScreenWidth/2, 42, assets.Face(24)),
		statusIndicator: ui.NewStatusIndicator(18, 30, face),
		face:            face,
		bigFace:         assets.Face(34),
	}
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update(deltaTime)

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sm.SetState(NewPauseState(g.sm, g, g.game))
		return
	}
	g.handleKeys()

	g.game.Update(deltaTime)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(x, y) {
			g.handleGameClick(x, y)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.cancelModes()
	}
}

func (g *GameState) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.game.StartWave()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.game.Defeated() {
		if ok, reason := g.game.RetryFromCheckpoint(); ok {
			g.clearSelection()
		} else {
			logger.Log.WithField("reason", reason).Info("checkpoint retry refused")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && (g.game.Defeated() || g.game.Victorious()) {
		g.sm.SetState(NewMenuState(g.sm))
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		x, y := ebiten.CursorPosition()
		g.game.SpawnCrystal(geom.Vec2{X: float64(x), Y: float64(y)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.game.FocusEnemy(types.None)
	}

	// Горячие клавиши дублируют кнопки панели выбранной башни.
	if g.selected != types.None {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyU):
			g.applyPanelAction(ui.ActionUpgrade)
		case inpututil.IsKeyJustPressed(ebiten.KeyD):
			g.applyPanelAction(ui.ActionDemote)
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			g.applyPanelAction(ui.ActionSell)
		case inpututil.IsKeyJustPressed(ebiten.KeyP):
			g.applyPanelAction(ui.ActionPriority)
		case inpututil.IsKeyJustPressed(ebiten.KeyL):
			g.applyPanelAction(ui.ActionLink)
		case inpututil.IsKeyJustPressed(ebiten.KeyX):
			g.applyPanelAction(ui.ActionUnlink)
		}
	}
}

// handleUIClick отдаёт клик виджетам HUD. Возвращает true, если клик
// поглощён и не должен дойти до игрового поля.
func (g *GameState) handleUIClick(x, y int) bool {
	mx, my := float32(x), float32(y)

	if g.speedButton.IsClicked(mx, my) {
		g.speedButton.ToggleState()
		g.game.SetSpeedLevel(g.speedButton.CurrentState)
		return true
	}
	if g.pauseButton.IsClicked(mx, my) {
		g.pauseButton.TogglePause()
		g.game.SetCombatActive(!g.pauseButton.IsPaused)
		return true
	}
	if g.buildBar.Click(x, y) {
		g.clearSelection()
		return true
	}
	if g.infoPanel.Contains(x, y) {
		g.applyPanelAction(g.infoPanel.Click(x, y))
		return true
	}
	return false
}

func (g *GameState) applyPanelAction(action ui.PanelAction) {
	id := g.selected
	if id == types.None {
		return
	}
	switch action {
	case ui.ActionUpgrade:
		if _, reason := g.game.UpgradeTower(id); reason != "" {
			logger.Log.WithField("reason", reason).Debug("upgrade refused")
		}
	case ui.ActionDemote:
		if _, reason := g.game.DemoteTower(id); reason != "" {
			logger.Log.WithField("reason", reason).Debug("demote refused")
		}
	case ui.ActionSell:
		g.game.SellTower(id)
		g.clearSelection()
	case ui.ActionPriority:
		next := component.PriorityStrongest
		if tower, ok := g.game.ECS.Towers[id]; ok && tower.Priority == component.PriorityStrongest {
			next = component.PriorityFirst
		}
		g.game.SetTargetPriority(id, next)
	case ui.ActionLink:
		g.linkFrom = id
	case ui.ActionUnlink:
		g.game.DisconnectTower(id)
	}
}

func (g *GameState) handleGameClick(x, y int) {
	pos := geom.Vec2{X: float64(x), Y: float64(y)}

	// Режим прокладки линии: следующий клик выбирает получателя.
	if g.linkFrom != types.None {
		if towerID, ok := g.towerAt(pos); ok {
			if _, reason := g.game.ConnectTowers(g.linkFrom, towerID); reason != "" {
				logger.Log.WithField("reason", reason).Info("link refused")
			}
		}
		g.linkFrom = types.None
		return
	}

	if towerID, ok := g.towerAt(pos); ok {
		g.selected = towerID
		g.infoPanel.SetTarget(towerID)
		g.render.SetHighlighted(towerID)
		return
	}
	if enemyID, ok := g.enemyAt(pos); ok {
		g.game.FocusEnemy(enemyID)
		g.infoPanel.SetTarget(enemyID)
		return
	}

	if g.buildBar.Selected != "" {
		if _, ok, reason := g.game.PlaceTower(g.buildBar.Selected, pos); !ok {
			logger.Log.WithField("reason", reason).Debug("placement refused")
		}
		return
	}

	g.clearSelection()
}

func (g *GameState) cancelModes() {
	g.linkFrom = types.None
	g.buildBar.Selected = ""
	g.clearSelection()
}

func (g *GameState) clearSelection() {
	g.selected = types.None
	g.infoPanel.Hide()
	g.render.SetHighlighted(types.None)
}

func (g *GameState) towerAt(pos geom.Vec2) (types.EntityID, bool) {
	for id := range g.game.ECS.Towers {
		towerPos, ok := g.game.ECS.Positions[id]
		if !ok {
			continue
		}
		if pos.Distance(towerPos.Pos) <= config.TowerRadius*1.3 {
			return id, true
		}
	}
	return types.None, false
}

func (g *GameState) enemyAt(pos geom.Vec2) (types.EntityID, bool) {
	for id := range g.game.ECS.Enemies {
		enemyPos, ok := g.game.ECS.Positions[id]
		if !ok {
			continue
		}
		if pos.Distance(enemyPos.Pos) <= config.EnemyRadius*1.5 {
			return id, true
		}
	}
	return types.None, false
}

func (g *GameState) Draw(screen *ebiten.Image) {
	g.render.Draw(screen)

	mx, my := ebiten.CursorPosition()

	// Натянутая от источника к курсору линия снабжения.
	if g.linkFrom != types.None {
		if fromPos, ok := g.game.ECS.Positions[g.linkFrom]; ok {
			vector.StrokeLine(screen,
				float32(fromPos.Pos.X), float32(fromPos.Pos.Y),
				float32(mx), float32(my), 1.5, config.LinkLineColor, true)
		}
	}

	// Превью постройки: круг будущей башни и кольцо радиуса.
	if g.buildBar.Selected != "" && !g.buildBar.Contains(mx, my) {
		pos := geom.Vec2{X: float64(mx), Y: float64(my)}
		ghost := color.RGBA{110, 220, 110, 90}
		if g.game.PlacementReason(pos) != "" {
			ghost = color.RGBA{230, 90, 90, 90}
		}
		vector.DrawFilledCircle(screen, float32(mx), float32(my), float32(config.TowerRadius), ghost, true)
		if def, ok := defs.TowerDefs[g.buildBar.Selected]; ok && def.Range > 0 {
			vector.StrokeCircle(screen, float32(mx), float32(my), float32(def.Range), 1, config.RangeRingColor, true)
		}
	}

	g.statusIndicator.Draw(screen, g.game.Energy(), g.game.Lives())
	g.waveIndicator.Draw(screen, g.game.WaveNumber(), g.isBossWave())
	g.speedButton.Draw(screen)
	// Поражение замораживает бой мимо кнопки, поэтому она равняется на игру.
	g.pauseButton.SetPaused(!g.game.CombatActive())
	g.pauseButton.Draw(screen)
	g.buildBar.Draw(screen, g.game.Energy(), mx, my)
	g.infoPanel.Draw(screen, g.game.ECS, g.selectedTotals(), mx, my)

	if !g.game.WaveInProgress() && !g.game.Defeated() && !g.game.Victorious() {
		hint := "space — next wave"
		hb := text.BoundString(g.face, hint)
		text.Draw(screen, hint, g.face, config.ScreenWidth-(hb.Max.X-hb.Min.X)-18, config.ScreenHeight-18, color.RGBA{180, 180, 190, 255})
	}

	g.drawOutcome(screen)
}

// selectedTotals достаёт боевую статистику выбранной башни, если рекордер
// встроенный.
func (g *GameState) selectedTotals() *stats.TowerTotals {
	if g.selected == types.None {
		return nil
	}
	recorder, ok := g.game.Recorder.(*stats.MemoryRecorder)
	if !ok {
		return nil
	}
	return recorder.Totals()[g.selected]
}

func (g *GameState) isBossWave() bool {
	number := g.game.WaveNumber()
	if number <= 0 || len(defs.Waves) == 0 {
		return false
	}
	return defs.Waves[(number-1)%len(defs.Waves)].Boss != nil
}

func (g *GameState) drawOutcome(screen *ebiten.Image) {
	var title string
	switch {
	case g.game.Defeated():
		title = "DEFEAT"
	case g.game.Victorious():
		title = "VICTORY"
	default:
		return
	}

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 140}, false)

	tb := text.BoundString(g.bigFace, title)
	text.Draw(screen, title, g.bigFace,
		(config.ScreenWidth-(tb.Max.X-tb.Min.X))/2, config.ScreenHeight/2-30, config.TextLightColor)

	hints := []string{"enter — menu"}
	if g.game.Defeated() && g.game.HasCheckpoint() {
		hints = append([]string{fmt.Sprintf("r — retry cycle %d", g.game.Cycle())}, hints...)
	}
	y := config.ScreenHeight/2 + 10
	for _, hint := range hints {
		hb := text.BoundString(g.face, hint)
		text.Draw(screen, hint, g.face, (config.ScreenWidth-(hb.Max.X-hb.Min.X))/2, y, color.RGBA{200, 200, 210, 255})
		y += 24
	}
}

func (g *GameState) Exit() {}
