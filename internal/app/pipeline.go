package app

import (
	"errors"
	"fmt"

	"github.com/ayusman/gestr/internal/touch"
)

// Message types understood by Dispatch.
const (
	MsgStart  = "start"
	MsgEnd    = "end"
	MsgClear  = "clear"
	MsgSet    = "set"
	MsgFseq   = "fseq"
	MsgFrame  = "frame"
	MsgAction = "action"
)

var (
	// ErrUnknownMessage is returned by Dispatch for an unrecognised message type.
	ErrUnknownMessage = errors.New("unknown message type")
	// ErrInvalidContact is returned by Dispatch for a contact with a NaN or infinite coordinate.
	ErrInvalidContact = errors.New("invalid contact")
)

// Message is one inbound event from the touch transport.
type Message struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Contact  *touch.Contact  `json:"contact,omitempty"`
	Contacts []touch.Contact `json:"contacts,omitempty"`
	Action   string          `json:"action,omitempty"`
	Params   []string        `json:"params,omitempty"`
}

// Reply is sent back to the transport for messages that produce a result.
type Reply struct {
	Type   string   `json:"type"`
	Action string   `json:"action"`
	Result []string `json:"result"`
}

// Session is the state of one touch source. Contacts set through a session
// only ever land in that session's frames.
//
// A Session is not safe for concurrent use; each transport connection owns one.
type Session struct {
	app *App

	// pending holds contacts of the tick being assembled.
	pending []touch.Contact
}

// NewSession creates a Session feeding this App.
func (a *App) NewSession() *Session {
	return &Session{app: a}
}

// AddContact adds a contact to the frame being assembled for the current tick.
func (s *Session) AddContact(c touch.Contact) {
	s.pending = append(s.pending, c)
}

// CompleteFrame closes the current tick: the assembled contacts become a frame
// and are pushed into the collector. A tick without contacts yields an empty frame.
func (s *Session) CompleteFrame(seq int64) {
	f := touch.NewFrame(seq, s.pending...)
	s.pending = s.pending[:0]
	s.app.AppendFrame(f)
}

// Pending returns the number of contacts waiting for the next CompleteFrame.
func (s *Session) Pending() int {
	return len(s.pending)
}

func checkContact(c touch.Contact) error {
	if !c.Finite() {
		return fmt.Errorf("%w: contact %d has a non-finite coordinate", ErrInvalidContact, c.ID)
	}
	return nil
}

// Dispatch applies one transport message to the collector.
//
// Message flow:
//  1. "start" begins recording the named gesture
//  2. "set" adds one contact to the tick being assembled
//  3. "fseq" closes the tick and appends the assembled frame
//  4. "frame" appends a complete frame in one message
//  5. "end" finalizes the sample, "clear" discards it
//  6. "action" runs a recognizer action and returns a Reply
//
// Messages carrying a non-finite contact are rejected whole.
func (s *Session) Dispatch(msg Message) (*Reply, error) {
	a := s.app
	switch msg.Type {
	case MsgStart:
		a.StartSample(msg.Name)
	case MsgEnd:
		a.EndSample()
	case MsgClear:
		a.ClearSample()
	case MsgSet:
		if msg.Contact == nil {
			return nil, fmt.Errorf("%s message without contact", MsgSet)
		}
		if err := checkContact(*msg.Contact); err != nil {
			return nil, err
		}
		s.AddContact(*msg.Contact)
	case MsgFseq:
		s.CompleteFrame(msg.Seq)
	case MsgFrame:
		for _, c := range msg.Contacts {
			if err := checkContact(c); err != nil {
				return nil, err
			}
		}
		a.AppendFrame(touch.NewFrame(msg.Seq, msg.Contacts...))
	case MsgAction:
		result := a.PerformAction(msg.Action, msg.Params)
		if result == nil {
			result = []string{}
		}
		return &Reply{Type: MsgAction, Action: msg.Action, Result: result}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil, nil
}
