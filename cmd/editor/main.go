package main

import (
	"net/http"

	rl "github.com/gen2brain/raylib-go/raylib"

	"block-editor/internal/block"
	"block-editor/internal/commands"
	"block-editor/internal/debug"
	"block-editor/internal/editorconfig"
	"block-editor/internal/env"
	"block-editor/internal/graphics"
	"block-editor/internal/interact"
	"block-editor/internal/logger"
	"block-editor/internal/material"
	"block-editor/internal/persist"
	"block-editor/internal/primitives"
	"block-editor/internal/remote"
	"block-editor/internal/scene"
	"block-editor/internal/session"
	"block-editor/internal/terminal"
)

// editor bundles the per-frame collaborators of the main loop.
type editor struct {
	sess    *session.Session
	machine *interact.Machine
	scn     *scene.Scene
	prims   *primitives.Registry
	term    *terminal.Terminal
	dbg     *debug.Debug
	log     *logger.Logger
	remote  *remote.Server
}

func main() {
	_ = env.Load(".env")
	prefs, _ := editorconfig.Load()

	log := logger.New()
	reg := commands.NewRegistry()
	term := terminal.New(log, reg)
	dbg := debug.New()
	dbg.SetShowFPS(prefs.ShowFPS)
	dbg.SetShowMemAlloc(prefs.ShowMemAlloc)

	sess := session.New(block.NewStore(), material.Load())
	sess.SetGridMode(session.ParseGridMode(prefs.GridMode))
	sess.SetPlaceMode(prefs.PlaceMode)
	machine := interact.NewMachine(sess)

	var scenes *persist.Store
	if db, err := persist.Open(prefs.SceneDB); err != nil {
		log.Log("scene database unavailable: " + err.Error())
	} else {
		scenes = db
	}
	if scenes != nil && prefs.AutosaveScene != "" {
		if doc, err := scenes.LoadScene(prefs.AutosaveScene); err == nil {
			if err := sess.ImportJSON(doc); err != nil {
				log.Log("autosave restore failed: " + err.Error())
			}
		}
	}

	remoteAddr := env.Get("BLOCK_EDITOR_REMOTE", prefs.RemoteAddr)
	var srv *remote.Server
	if remoteAddr != "" {
		srv = remote.NewServer(log)
		mux := http.NewServeMux()
		mux.Handle("/ws", srv.Handler())
		go func() {
			if err := http.ListenAndServe(remoteAddr, mux); err != nil {
				log.Log("remote control stopped: " + err.Error())
			}
		}()
		log.Log("remote control listening on ws://" + remoteAddr + "/ws")
	}

	ed := &editor{
		sess:    sess,
		machine: machine,
		scn:     scene.New(),
		prims:   primitives.NewRegistry(),
		term:    term,
		dbg:     dbg,
		log:     log,
		remote:  srv,
	}
	registerCommands(reg, ed, scenes)

	graphics.Run(ed.update, ed.draw)

	if scenes != nil {
		if prefs.AutosaveScene != "" {
			if err := scenes.SaveScene(prefs.AutosaveScene, sess.ExportedJSON()); err != nil {
				log.Log("autosave failed: " + err.Error())
			}
		}
		_ = scenes.Close()
	}
	prefs.GridMode = sess.GridMode().String()
	prefs.PlaceMode = sess.PlaceMode()
	prefs.ShowFPS = dbg.ShowFPS
	prefs.ShowMemAlloc = dbg.ShowMemAlloc
	_ = editorconfig.Save(prefs)
	ed.prims.Unload()
}

// update runs once per frame before drawing: terminal input, queued remote
// commands, pointer interaction, then camera.
func (e *editor) update() {
	e.term.Update()
	if e.remote != nil {
		e.remote.Drain(e.sess)
	}
	if !e.term.IsOpen() {
		e.handleHotkeys()
		ray := e.scn.MouseRay()
		switch {
		case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
			e.machine.PointerDown(ray)
		case rl.IsMouseButtonReleased(rl.MouseButtonLeft):
			e.machine.PointerUp(ray)
		case rl.IsMouseButtonDown(rl.MouseButtonLeft):
			e.machine.PointerMove(ray)
		}
	}
	e.scn.GridMode = e.sess.GridMode()
	e.scn.Update(e.machine.CameraLocked())
}

// toolKeys maps number keys to tool modes, mirroring the terminal's
// "cmd tool" command.
var toolKeys = map[int32]session.Mode{
	rl.KeyZero:  session.ModeNone,
	rl.KeyOne:   session.ModeRescale,
	rl.KeyTwo:   session.ModePaint,
	rl.KeyThree: session.ModeMaterial,
	rl.KeyFour:  session.ModeSetting,
	rl.KeyFive:  session.ModePlace,
	rl.KeySix:   session.ModeDestroy,
}

func (e *editor) handleHotkeys() {
	for key, mode := range toolKeys {
		if rl.IsKeyPressed(key) {
			e.sess.SetToolMode(mode)
			e.log.Log("tool: " + mode.String())
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		next := (e.sess.GridMode() + 1) % 3
		e.sess.SetGridMode(next)
	}
	if rl.IsKeyPressed(rl.KeyDelete) {
		if b := e.sess.Selected(); b != nil {
			e.sess.RemoveBlock(b)
		}
	}
}
