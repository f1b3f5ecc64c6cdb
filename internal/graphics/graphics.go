package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Run starts the window and main loop. Each frame it calls update (input,
// remote commands), then clears the screen and calls draw (scene and overlay).
// This keeps the graphics layer separate from editor logic and screen content.
// Window is fullscreen (FlagFullscreenMode). ESC toggles the terminal; close
// via window button.
func Run(update, draw func()) {
	rl.SetConfigFlags(rl.FlagFullscreenMode)
	rl.InitWindow(int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0)), "block editor")
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC toggles the terminal, not quit; close via window button
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
}
