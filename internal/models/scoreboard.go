package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Standing is one row of the leaderboard.
type Standing struct {
	Participant string `json:"participant"`
	Points      int    `json:"points"`
}

// Scoreboard maps participants to points and remembers insertion order, which
// is also the order of its JSON object keys.
type Scoreboard struct {
	order  []string
	points map[string]int
}

func NewScoreboard(participants ...string) Scoreboard {
	s := Scoreboard{
		order:  make([]string, 0, len(participants)),
		points: make(map[string]int, len(participants)),
	}
	for _, p := range participants {
		s.Set(p, 0)
	}
	return s
}

// Set stores points for a participant, appending it if unseen.
func (s *Scoreboard) Set(participant string, points int) {
	if s.points == nil {
		s.points = make(map[string]int)
	}
	if _, ok := s.points[participant]; !ok {
		s.order = append(s.order, participant)
	}
	s.points[participant] = points
}

// Add increments a participant's points, creating the entry at 0 first.
func (s *Scoreboard) Add(participant string, delta int) {
	current := s.points[participant]
	s.Set(participant, current+delta)
}

func (s Scoreboard) Get(participant string) (int, bool) {
	p, ok := s.points[participant]
	return p, ok
}

func (s Scoreboard) Len() int {
	return len(s.order)
}

// Total is the sum of all points.
func (s Scoreboard) Total() int {
	total := 0
	for _, p := range s.points {
		total += p
	}
	return total
}

// Entries returns the standings in insertion order.
func (s Scoreboard) Entries() []Standing {
	out := make([]Standing, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, Standing{Participant: name, Points: s.points[name]})
	}
	return out
}

func (s Scoreboard) Clone() Scoreboard {
	c := Scoreboard{
		order:  make([]string, len(s.order)),
		points: make(map[string]int, len(s.points)),
	}
	copy(c.order, s.order)
	for k, v := range s.points {
		c.points[k] = v
	}
	return c
}

func (s Scoreboard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(s.points[name]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Scoreboard) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("scoreboard: %w", err)
	}
	if tok == nil {
		*s = NewScoreboard()
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scoreboard: expected object, got %v", tok)
	}

	out := NewScoreboard()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("scoreboard: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("scoreboard: unexpected key %v", keyTok)
		}
		var points int
		if err := dec.Decode(&points); err != nil {
			return fmt.Errorf("scoreboard: points for %q: %w", name, err)
		}
		out.Set(name, points)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("scoreboard: %w", err)
	}

	*s = out
	return nil
}
