package models

// Snapshot is the whole persisted state of a board.
type Snapshot struct {
	Tasks       []Task             `json:"tasks"`
	Points      Scoreboard         `json:"points"`
	Users       map[string]Account `json:"users"`
	CurrentUser *Session           `json:"currentUser"`
}

// DefaultSnapshot is the state of a board that was never saved.
func DefaultSnapshot(participants []string) *Snapshot {
	return &Snapshot{
		Tasks:  []Task{},
		Points: NewScoreboard(participants...),
		Users:  map[string]Account{},
	}
}

func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Tasks:  make([]Task, len(s.Tasks)),
		Points: s.Points.Clone(),
		Users:  make(map[string]Account, len(s.Users)),
	}
	copy(c.Tasks, s.Tasks)
	for k, v := range s.Users {
		c.Users[k] = v
	}
	if s.CurrentUser != nil {
		session := *s.CurrentUser
		c.CurrentUser = &session
	}
	return c
}

// TaskIndex returns the ledger position of the task with the given ID, or -1.
func (s *Snapshot) TaskIndex(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
