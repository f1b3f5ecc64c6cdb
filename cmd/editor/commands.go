package main

import (
	"flag"
	"fmt"
	"strings"

	"block-editor/internal/commands"
	"block-editor/internal/material"
	"block-editor/internal/persist"
	"block-editor/internal/session"
)

// registerCommands wires the terminal's "cmd ..." verbs to the session and the
// scene store. Every command logs its result so the terminal shows feedback.
func registerCommands(reg *commands.Registry, ed *editor, scenes *persist.Store) {
	sess := ed.sess
	log := ed.log

	toolFS := flag.NewFlagSet("tool", flag.ContinueOnError)
	toolMode := toolFS.String("mode", "none", "none|rescale|paint|material|setting|place|destroy")
	reg.Register("tool", toolFS, func() error {
		sess.SetToolMode(session.ParseMode(*toolMode))
		log.Log("tool: " + sess.Mode().String())
		return nil
	})

	gridFS := flag.NewFlagSet("grid", flag.ContinueOnError)
	gridMode := gridFS.String("mode", "normal", "normal|translucent|hidden")
	reg.Register("grid", gridFS, func() error {
		sess.SetGridMode(session.ParseGridMode(*gridMode))
		log.Log("grid: " + sess.GridMode().String())
		return nil
	})

	placeFS := flag.NewFlagSet("place", flag.ContinueOnError)
	placeOn := placeFS.Bool("on", false, "enable placement on pointer clicks")
	reg.Register("place", placeFS, func() error {
		sess.SetPlaceMode(*placeOn)
		log.Log(fmt.Sprintf("place mode: %v", sess.PlaceMode()))
		return nil
	})

	sizeFS := flag.NewFlagSet("size", flag.ContinueOnError)
	sizeX := sizeFS.Int("x", 1, "block size X")
	sizeY := sizeFS.Int("y", 1, "block size Y")
	sizeZ := sizeFS.Int("z", 1, "block size Z")
	reg.Register("size", sizeFS, func() error {
		sess.SetCurrentSize(*sizeX, *sizeY, *sizeZ)
		s := sess.CurrentSize()
		log.Log(fmt.Sprintf("size: %dx%dx%d", s[0], s[1], s[2]))
		return nil
	})

	colorFS := flag.NewFlagSet("color", flag.ContinueOnError)
	colorR := colorFS.Float64("r", 1, "red 0..1")
	colorG := colorFS.Float64("g", 1, "green 0..1")
	colorB := colorFS.Float64("b", 1, "blue 0..1")
	colorClear := colorFS.Bool("clear", false, "clear the color override")
	reg.Register("color", colorFS, func() error {
		if *colorClear {
			sess.SetColorOverride(nil)
			log.Log("color override cleared")
			return nil
		}
		sess.SetColorOverride(&material.RGB{R: *colorR, G: *colorG, B: *colorB})
		log.Log(fmt.Sprintf("color: %.2f %.2f %.2f", *colorR, *colorG, *colorB))
		return nil
	})

	matFS := flag.NewFlagSet("material", flag.ContinueOnError)
	matName := matFS.String("name", "", "material name, empty clears")
	reg.Register("material", matFS, func() error {
		sess.SetSelectedMaterial(*matName)
		if *matName == "" {
			log.Log("material cleared")
		} else if _, ok := sess.Materials().Lookup(*matName); !ok {
			log.Log("material " + *matName + " unknown; known: " + strings.Join(sess.Materials().Names(), ", "))
		} else {
			log.Log("material: " + *matName)
		}
		return nil
	})

	transFS := flag.NewFlagSet("transparency", flag.ContinueOnError)
	transValue := transFS.Float64("value", 0, "0 opaque .. 1 invisible")
	transReset := transFS.Bool("reset", false, "reset to opaque")
	reg.Register("transparency", transFS, func() error {
		b := sess.Selected()
		if b == nil {
			return fmt.Errorf("no block selected")
		}
		if *transReset {
			sess.SetBlockTransparency(b, nil)
		} else {
			sess.SetBlockTransparency(b, transValue)
		}
		log.Log(fmt.Sprintf("transparency: %.2f", b.Transparency))
		return nil
	})

	reg.Register("clear", flag.NewFlagSet("clear", flag.ContinueOnError), func() error {
		sess.Clear()
		log.Log("scene cleared")
		return nil
	})

	saveFS := flag.NewFlagSet("save", flag.ContinueOnError)
	saveName := saveFS.String("name", "", "scene name")
	reg.Register("save", saveFS, func() error {
		if scenes == nil {
			return fmt.Errorf("scene database unavailable")
		}
		if err := scenes.SaveScene(*saveName, sess.ExportedJSON()); err != nil {
			return err
		}
		log.Log("saved scene " + *saveName)
		return nil
	})

	loadFS := flag.NewFlagSet("load", flag.ContinueOnError)
	loadName := loadFS.String("name", "", "scene name")
	reg.Register("load", loadFS, func() error {
		if scenes == nil {
			return fmt.Errorf("scene database unavailable")
		}
		doc, err := scenes.LoadScene(*loadName)
		if err != nil {
			return err
		}
		if err := sess.ImportJSON(doc); err != nil {
			return err
		}
		log.Log(fmt.Sprintf("loaded scene %s (%d blocks)", *loadName, sess.Store().Len()))
		return nil
	})

	reg.Register("scenes", flag.NewFlagSet("scenes", flag.ContinueOnError), func() error {
		if scenes == nil {
			return fmt.Errorf("scene database unavailable")
		}
		names, err := scenes.ListScenes()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			log.Log("no saved scenes")
			return nil
		}
		log.Log("scenes: " + strings.Join(names, ", "))
		return nil
	})

	deleteFS := flag.NewFlagSet("delete", flag.ContinueOnError)
	deleteName := deleteFS.String("name", "", "scene name")
	reg.Register("delete", deleteFS, func() error {
		if scenes == nil {
			return fmt.Errorf("scene database unavailable")
		}
		if err := scenes.DeleteScene(*deleteName); err != nil {
			return err
		}
		log.Log("deleted scene " + *deleteName)
		return nil
	})

	exportFS := flag.NewFlagSet("export", flag.ContinueOnError)
	exportFile := exportFS.String("file", "scene.json", "output path")
	reg.Register("export", exportFS, func() error {
		if err := persist.WriteSceneFile(*exportFile, sess.ExportedJSON()); err != nil {
			return err
		}
		log.Log("exported to " + *exportFile)
		return nil
	})

	importFS := flag.NewFlagSet("import", flag.ContinueOnError)
	importFile := importFS.String("file", "scene.json", "input path")
	reg.Register("import", importFS, func() error {
		doc, err := persist.ReadSceneFile(*importFile)
		if err != nil {
			return err
		}
		if err := sess.ImportJSON(doc); err != nil {
			return err
		}
		log.Log(fmt.Sprintf("imported %s (%d blocks)", *importFile, sess.Store().Len()))
		return nil
	})

	fpsFS := flag.NewFlagSet("fps", flag.ContinueOnError)
	fpsShow := fpsFS.Bool("show", true, "show the FPS counter")
	reg.Register("fps", fpsFS, func() error {
		ed.dbg.SetShowFPS(*fpsShow)
		return nil
	})

	memFS := flag.NewFlagSet("mem", flag.ContinueOnError)
	memShow := memFS.Bool("show", true, "show the heap counter")
	reg.Register("mem", memFS, func() error {
		ed.dbg.SetShowMemAlloc(*memShow)
		return nil
	})

	reg.Register("help", flag.NewFlagSet("help", flag.ContinueOnError), func() error {
		log.Log("commands: " + strings.Join(reg.Names(), ", "))
		return nil
	})
}
