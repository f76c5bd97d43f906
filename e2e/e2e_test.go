package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/gestr/internal/app"
	"github.com/ayusman/gestr/internal/config"
	"github.com/ayusman/gestr/internal/gesture"
	"github.com/ayusman/gestr/internal/server"
	"github.com/ayusman/gestr/internal/store"
	"github.com/ayusman/gestr/internal/touch"
)

type gestureList struct {
	Gestures []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Samples int    `json:"samples"`
	} `json:"gestures"`
}

type sampleList struct {
	Samples []struct {
		SampleIndex int           `json:"sample_index"`
		FrameCount  int           `json:"frame_count"`
		Fingers     int           `json:"fingers"`
		Frames      []touch.Frame `json:"frames"`
	} `json:"samples"`
}

func getJSON(t *testing.T, client *http.Client, url string, v interface{}) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s status = %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s decode error = %v", url, err)
	}
}

// flush sends a status action and waits for its reply, so every earlier
// message on the connection has been applied.
func flush(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	if err := conn.WriteJSON(app.Message{Type: app.MsgAction, Action: "status"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
}

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	cfg := config.Defaults()
	cfg.TrimStatic = true
	cfg.Recognizer = gesture.RecognizerParam
	cfg.Parameters = []gesture.NamedSpec{{Name: "centroid", Spec: "all_mean"}}

	application, err := app.New(app.Config{Settings: cfg, Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	ts := httptest.NewServer(server.New(server.Config{App: application}))
	defer ts.Close()

	client := ts.Client()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/ingest", nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	send := func(msg app.Message) {
		t.Helper()
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("WriteJSON() error = %v", err)
		}
	}

	t.Run("RecordHoldThenSwipe", func(t *testing.T) {
		send(app.Message{Type: app.MsgStart, Name: "swipe-right"})

		// A held pose collapses to one frame while trimming is on
		for i := 0; i < 12; i++ {
			send(app.Message{Type: app.MsgFrame, Seq: int64(i), Contacts: []touch.Contact{{ID: 1, X: 0.2, Y: 0.5}}})
		}
		for i := 1; i <= 3; i++ {
			send(app.Message{Type: app.MsgFrame, Seq: int64(11 + i), Contacts: []touch.Contact{{ID: 1, X: 0.2 + float64(i)*0.1, Y: 0.5}}})
		}
		flush(t, conn)

		if st := application.Status(); st.ActiveSize != 4 {
			t.Fatalf("active size = %d, want 4", st.ActiveSize)
		}

		send(app.Message{Type: app.MsgEnd})
		flush(t, conn)
	})

	t.Run("DiscardedSampleIsNotSaved", func(t *testing.T) {
		send(app.Message{Type: app.MsgStart, Name: "swipe-right"})
		send(app.Message{Type: app.MsgFrame, Contacts: []touch.Contact{{ID: 1, X: 0.9, Y: 0.9}}})
		send(app.Message{Type: app.MsgClear})
		flush(t, conn)

		if st := application.Status(); st.Recording || st.Samples != 1 {
			t.Fatalf("unexpected status %+v", st)
		}
	})

	var gestureID string

	t.Run("ListGestures", func(t *testing.T) {
		var list gestureList
		getJSON(t, client, ts.URL+"/api/gestures", &list)

		if len(list.Gestures) != 1 {
			t.Fatalf("expected 1 gesture, got %d", len(list.Gestures))
		}
		g := list.Gestures[0]
		if g.Name != "swipe-right" || g.Samples != 1 {
			t.Errorf("unexpected gesture %+v", g)
		}
		gestureID = g.ID
	})

	t.Run("ListSamples", func(t *testing.T) {
		var list sampleList
		getJSON(t, client, ts.URL+"/api/gestures/"+gestureID+"/samples", &list)

		if len(list.Samples) != 1 {
			t.Fatalf("expected 1 sample, got %d", len(list.Samples))
		}
		sample := list.Samples[0]
		if sample.FrameCount != 4 || len(sample.Frames) != 4 || sample.Fingers != 1 {
			t.Errorf("unexpected sample %+v", sample)
		}
		if sample.Frames[0].Seq != 0 {
			t.Errorf("first frame seq = %d, want 0 (earliest frame of the hold)", sample.Frames[0].Seq)
		}
	})

	t.Run("DeleteGesture", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/gestures/"+gestureID, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("DELETE error = %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}

		samples, err := s.Samples().GetByGestureID(gestureID)
		if err != nil {
			t.Fatalf("GetByGestureID() error = %v", err)
		}
		if len(samples) != 0 {
			t.Errorf("expected samples to cascade, got %d", len(samples))
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after collector operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_StoredSampleRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	cfg := config.Defaults()
	cfg.DBPath = s.Path()
	application, err := app.New(app.Config{Settings: cfg, Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	application.StartSample("pinch")
	session := application.NewSession()
	for i := 0; i < 3; i++ {
		session.AddContact(touch.Contact{ID: 1, X: 0.1, Y: 0.1})
		session.AddContact(touch.Contact{ID: 2, X: 0.9 - float64(i)*0.2, Y: 0.9})
		session.CompleteFrame(int64(i))
	}
	if _, ok := application.EndSample(); !ok {
		t.Fatal("EndSample() reported no sample")
	}

	g, err := s.Gestures().GetByName("pinch")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	stored, err := s.Samples().GetByGestureID(g.ID)
	if err != nil || len(stored) != 1 {
		t.Fatalf("GetByGestureID() = %d samples, err %v", len(stored), err)
	}

	// The stored frames parameterize exactly like the in-memory sample
	reg, err := gesture.NewRegistry([]gesture.NamedSpec{{Name: "spread", Spec: "fing_dist 0 1"}})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	restored := stored[0].TouchSample()
	live := application.Samples()[0]
	for i := 0; i < live.Len(); i++ {
		got := reg.Apply(restored.At(i))["spread"]
		want := reg.Apply(live.At(i))["spread"]
		if len(got) != 1 || len(want) != 1 || got[0] != want[0] {
			t.Errorf("frame %d: spread = %v, want %v", i, got, want)
		}
	}
}
