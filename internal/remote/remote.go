// Package remote exposes the editor session over a websocket control channel.
// Connections only decode commands and queue them; the frame loop drains the
// queue on the UI event thread, so the session never sees concurrent mutation.
package remote

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"block-editor/internal/codec"
	"block-editor/internal/logger"
	"block-editor/internal/material"
	"block-editor/internal/session"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second

	// inboxSize bounds queued commands across all connections; a stalled frame
	// loop pushes back on senders instead of growing without limit.
	inboxSize = 256

	// outSize bounds per-connection replies. A reader that stops consuming
	// loses replies rather than stalling the frame loop.
	outSize = 16
)

// Command is one control message. Op selects the operation; the remaining
// fields are read per op and ignored otherwise.
type Command struct {
	Op string `json:"op"`

	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"` // base elevation, not internal center
	Z *float64 `json:"z,omitempty"`

	Size     *[3]int     `json:"size,omitempty"`
	Color    *[3]float64 `json:"color,omitempty"`
	Material *string     `json:"material,omitempty"`
	Mode     string      `json:"mode,omitempty"`
	Grid     string      `json:"grid,omitempty"`
	On       *bool       `json:"on,omitempty"`
	Value    *float64    `json:"value,omitempty"`
	ID       string      `json:"id,omitempty"`

	Doc json.RawMessage `json:"doc,omitempty"`
}

// Reply is the response to a command.
type Reply struct {
	Op  string `json:"op"`
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`

	Doc    json.RawMessage `json:"doc,omitempty"`
	Status string          `json:"status,omitempty"`
	Mode   string          `json:"mode,omitempty"`
	Blocks int             `json:"blocks,omitempty"`
	ID     string          `json:"id,omitempty"`
}

type envelope struct {
	cmd Command
	out chan []byte
}

// Server accepts websocket connections and funnels their commands into a
// single inbox for the frame loop.
type Server struct {
	log      *logger.Logger
	inbox    chan envelope
	upgrader websocket.Upgrader
}

// NewServer returns a server logging connection events to log (nil disables
// logging).
func NewServer(log *logger.Logger) *Server {
	return &Server{
		log:   log,
		inbox: make(chan envelope, inboxSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // local tool
		},
	}
}

func (s *Server) logf(line string) {
	if s.log != nil {
		s.log.Log(line)
	}
}

// Handler returns the websocket endpoint. Each connection runs a reader loop
// feeding the shared inbox and a writer goroutine draining its reply channel.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		s.logf("remote: connection from " + r.RemoteAddr)

		out := make(chan []byte, outSize)
		done := make(chan struct{})
		defer close(done)

		go func() {
			for {
				select {
				case <-done:
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var cmd Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				sendReply(out, Reply{Op: "?", Err: "malformed command"})
				continue
			}
			s.inbox <- envelope{cmd: cmd, out: out}
		}
		s.logf("remote: connection closed " + r.RemoteAddr)
	}
}

// Drain applies queued commands to the session and answers them. It never
// blocks: an empty inbox returns immediately. Call once per frame on the UI
// event thread.
func (s *Server) Drain(sess *session.Session) int {
	n := 0
	for {
		select {
		case env := <-s.inbox:
			sendReply(env.out, apply(sess, env.cmd))
			n++
		default:
			return n
		}
	}
}

func sendReply(out chan []byte, r Reply) {
	if r.Err == "" {
		r.OK = true
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case out <- b:
	default: // slow reader, drop the reply
	}
}

func apply(sess *session.Session, cmd Command) Reply {
	r := Reply{Op: cmd.Op}
	switch cmd.Op {
	case "place":
		if cmd.X == nil || cmd.Y == nil || cmd.Z == nil {
			r.Err = "place needs x, y, z"
			return r
		}
		size := sess.CurrentSize()
		if cmd.Size != nil {
			size = *cmd.Size
		}
		b := sess.PlaceBlockAt(*cmd.X, *cmd.Y, *cmd.Z, size[0], size[1], size[2], sess.CurrentLook())
		r.ID = b.ID
	case "remove":
		b := sess.Selected()
		if cmd.ID != "" {
			b = sess.Store().Get(cmd.ID)
		}
		if b == nil {
			r.Err = "no such block"
			return r
		}
		sess.RemoveBlock(b)
	case "select":
		if cmd.ID == "" {
			sess.SetSelected(nil)
			return r
		}
		b := sess.Store().Get(cmd.ID)
		if b == nil {
			r.Err = "no such block"
			return r
		}
		sess.SetSelected(b)
	case "tool":
		sess.SetToolMode(session.ParseMode(cmd.Mode))
		r.Mode = sess.Mode().String()
	case "grid":
		sess.SetGridMode(session.ParseGridMode(cmd.Grid))
	case "placemode":
		if cmd.On == nil {
			r.Err = "placemode needs on"
			return r
		}
		sess.SetPlaceMode(*cmd.On)
	case "color":
		if cmd.Color == nil {
			sess.SetColorOverride(nil)
			return r
		}
		sess.SetColorOverride(colorOf(*cmd.Color))
	case "material":
		if cmd.Material == nil {
			r.Err = "material needs material"
			return r
		}
		sess.SetSelectedMaterial(*cmd.Material)
	case "size":
		if cmd.Size == nil {
			r.Err = "size needs size"
			return r
		}
		sess.SetCurrentSize(cmd.Size[0], cmd.Size[1], cmd.Size[2])
	case "transparency":
		b := sess.Selected()
		if cmd.ID != "" {
			b = sess.Store().Get(cmd.ID)
		}
		if b == nil {
			r.Err = "no such block"
			return r
		}
		sess.SetBlockTransparency(b, cmd.Value)
	case "clear":
		sess.Clear()
	case "export":
		r.Doc = json.RawMessage(sess.ExportedJSON())
	case "import":
		// Remote documents are validated strictly before they replace the
		// scene; only the in-editor JSON panel accepts legacy aliases.
		if err := codec.Validate(cmd.Doc); err != nil {
			r.Err = err.Error()
			return r
		}
		if err := sess.ImportJSON(string(cmd.Doc)); err != nil {
			r.Err = err.Error()
			return r
		}
		r.Blocks = sess.Store().Len()
	case "status":
		r.Status = sess.Status()
		r.Mode = sess.Mode().String()
		r.Blocks = sess.Store().Len()
	default:
		r.Err = "unknown op " + cmd.Op
	}
	return r
}

func colorOf(c [3]float64) *material.RGB {
	return &material.RGB{R: c[0], G: c[1], B: c[2]}
}
