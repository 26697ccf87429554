package session

import (
	"errors"
	"fmt"
)

var ErrDuplicateParticipant = errors.New("participant already in roster")

// Roster keeps participants in seed order, keyed by identity. It is not
// safe for concurrent use; the Controller serializes access.
type Roster struct {
	order []string
	byID  map[string]*Participant
}

func NewRoster() *Roster {
	return &Roster{byID: make(map[string]*Participant)}
}

func (r *Roster) Add(p Participant) error {
	if err := checkID(p.ID); err != nil {
		return fmt.Errorf("participant: %w", err)
	}
	if _, exists := r.byID[p.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.ID)
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	r.order = append(r.order, p.ID)
	r.byID[p.ID] = &p
	return nil
}

func (r *Roster) Get(id string) (Participant, bool) {
	p, ok := r.byID[id]
	if !ok {
		return Participant{}, false
	}
	return *p, true
}

// UpsertPresence sets the online flag of an existing entry. Unknown ids are
// ignored. It reports whether the entry exists and whether the flag changed.
func (r *Roster) UpsertPresence(id string, online bool) (changed, ok bool) {
	p, ok := r.byID[id]
	if !ok {
		return false, false
	}
	if p.Online == online {
		return false, true
	}
	p.Online = online
	return true, true
}

func (r *Roster) SetSpeaking(id string, speaking bool) (changed, ok bool) {
	p, ok := r.byID[id]
	if !ok {
		return false, false
	}
	if p.Speaking == speaking {
		return false, true
	}
	p.Speaking = speaking
	return true, true
}

func (r *Roster) OnlineCount() int {
	n := 0
	for _, p := range r.byID {
		if p.Online {
			n++
		}
	}
	return n
}

func (r *Roster) Len() int {
	return len(r.order)
}

func (r *Roster) List() []Participant {
	list := make([]Participant, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, *r.byID[id])
	}
	return list
}
