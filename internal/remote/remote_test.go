package remote

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"block-editor/internal/block"
	"block-editor/internal/material"
	"block-editor/internal/session"
)

func newSession() *session.Session {
	return session.New(block.NewStore(), material.Load())
}

func applyCmd(t *testing.T, s *Server, sess *session.Session, cmd Command) Reply {
	t.Helper()
	out := make(chan []byte, 1)
	s.inbox <- envelope{cmd: cmd, out: out}
	require.Equal(t, 1, s.Drain(sess))
	var r Reply
	require.NoError(t, json.Unmarshal(<-out, &r))
	return r
}

func f(v float64) *float64 { return &v }

func TestPlaceAndExport(t *testing.T) {
	s, sess := NewServer(nil), newSession()

	r := applyCmd(t, s, sess, Command{Op: "place", X: f(0), Y: f(0), Z: f(0)})
	require.True(t, r.OK)
	assert.NotEmpty(t, r.ID)

	r = applyCmd(t, s, sess, Command{Op: "export"})
	require.True(t, r.OK)
	// An empty palette places with the recorded near-white default tint.
	assert.JSONEq(t, `[{"P":[0,1,0],"S":[1,1,1],"C":[0.93,0.93,0.93]}]`, string(r.Doc))
}

func TestPlaceRequiresPosition(t *testing.T) {
	s, sess := NewServer(nil), newSession()
	r := applyCmd(t, s, sess, Command{Op: "place", X: f(1)})
	assert.False(t, r.OK)
	assert.Contains(t, r.Err, "place needs")
	assert.Zero(t, sess.Store().Len())
}

func TestToolAndPaletteCommands(t *testing.T) {
	s, sess := NewServer(nil), newSession()

	r := applyCmd(t, s, sess, Command{Op: "tool", Mode: "paint"})
	assert.Equal(t, "paint", r.Mode)
	assert.Equal(t, session.ModePaint, sess.Mode())

	applyCmd(t, s, sess, Command{Op: "color", Color: &[3]float64{1, 0, 0}})
	require.NotNil(t, sess.ColorOverride())
	assert.Equal(t, material.RGB{R: 1, G: 0, B: 0}, *sess.ColorOverride())

	applyCmd(t, s, sess, Command{Op: "color"})
	assert.Nil(t, sess.ColorOverride(), "omitted color clears the override")

	mat := "stone"
	applyCmd(t, s, sess, Command{Op: "material", Material: &mat})
	assert.Equal(t, "stone", sess.SelectedMaterial())

	applyCmd(t, s, sess, Command{Op: "size", Size: &[3]int{2, 0, 3}})
	assert.Equal(t, [3]int{2, 1, 3}, sess.CurrentSize(), "size clamped per axis")

	on := true
	applyCmd(t, s, sess, Command{Op: "placemode", On: &on})
	assert.True(t, sess.PlaceMode())
}

func TestSelectRemoveTransparency(t *testing.T) {
	s, sess := NewServer(nil), newSession()
	b := sess.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})

	r := applyCmd(t, s, sess, Command{Op: "select", ID: b.ID})
	require.True(t, r.OK)
	assert.Same(t, b, sess.Selected())

	r = applyCmd(t, s, sess, Command{Op: "transparency", Value: f(0.5)})
	require.True(t, r.OK, "selected block is the default target")
	assert.Equal(t, 0.5, b.Transparency)

	r = applyCmd(t, s, sess, Command{Op: "select", ID: "bogus"})
	assert.False(t, r.OK)

	r = applyCmd(t, s, sess, Command{Op: "remove", ID: b.ID})
	require.True(t, r.OK)
	assert.Zero(t, sess.Store().Len())

	r = applyCmd(t, s, sess, Command{Op: "remove"})
	assert.False(t, r.OK, "nothing selected, nothing identified")
}

func TestImportValidatesStrictly(t *testing.T) {
	s, sess := NewServer(nil), newSession()

	// Legacy aliases pass the in-editor import but not the remote one.
	r := applyCmd(t, s, sess, Command{
		Op:  "import",
		Doc: json.RawMessage(`[{"Position":[0,1,0],"Size":[1,1,1]}]`),
	})
	assert.False(t, r.OK)
	assert.Zero(t, sess.Store().Len())

	r = applyCmd(t, s, sess, Command{
		Op:  "import",
		Doc: json.RawMessage(`[{"P":[0,1,0],"S":[1,1,1]},{"P":[2,1,0],"S":[1,1,1]}]`),
	})
	require.True(t, r.OK)
	assert.Equal(t, 2, r.Blocks)
}

func TestStatusAndUnknownOp(t *testing.T) {
	s, sess := NewServer(nil), newSession()
	sess.PlaceBlockAt(0, 0, 0, 1, 1, 1, block.Look{})

	r := applyCmd(t, s, sess, Command{Op: "status"})
	assert.True(t, r.OK)
	assert.Equal(t, 1, r.Blocks)
	assert.Equal(t, "none", r.Mode)

	r = applyCmd(t, s, sess, Command{Op: "warp"})
	assert.False(t, r.OK)
	assert.Contains(t, r.Err, "unknown op")
}

func TestWebsocketRoundTrip(t *testing.T) {
	s, sess := NewServer(nil), newSession()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Command{Op: "place", X: f(2), Y: f(0), Z: f(0)}))

	// The frame loop drains the inbox; emulate a few frames until the
	// command has arrived over the socket.
	deadline := time.Now().Add(2 * time.Second)
	for s.Drain(sess) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("command never reached the inbox")
		}
		time.Sleep(5 * time.Millisecond)
	}

	var r Reply
	require.NoError(t, conn.ReadJSON(&r))
	assert.True(t, r.OK)
	assert.Equal(t, 1, sess.Store().Len())
}
