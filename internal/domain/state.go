package domain

// Counters are the running totals kept in the persisted document.
// They are bumped by deliveries; reports always rescan the collections.
type Counters struct {
	TotalMealsServed    int `json:"totalMealsServed"`
	TotalFoodSaved      int `json:"totalFoodSaved"`
	ActiveNGOs          int `json:"activeNGOs"`
	CompletedDeliveries int `json:"completedDeliveries"`
}

// State is the whole persisted document.
type State struct {
	Users     []*User  `json:"users"`
	Donors    []*Donor `json:"donors"`
	NGOs      []*NGO   `json:"ngos"`
	Matches   []*Match `json:"matches"`
	Analytics Counters `json:"analytics"`
}

// NewState returns an empty document with non-nil collections.
func NewState() *State {
	return &State{
		Users:   []*User{},
		Donors:  []*Donor{},
		NGOs:    []*NGO{},
		Matches: []*Match{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s *State) Normalize() {
	if s.Users == nil {
		s.Users = []*User{}
	}
	if s.Donors == nil {
		s.Donors = []*Donor{}
	}
	if s.NGOs == nil {
		s.NGOs = []*NGO{}
	}
	if s.Matches == nil {
		s.Matches = []*Match{}
	}
}

// FindDonor returns the donor with the given ID or nil.
func (s *State) FindDonor(id string) *Donor {
	for _, d := range s.Donors {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// FindNGO returns the NGO with the given ID or nil.
func (s *State) FindNGO(id string) *NGO {
	for _, n := range s.NGOs {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// FindMatch returns the match with the given ID or nil.
func (s *State) FindMatch(id string) *Match {
	for _, m := range s.Matches {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// FindUserByEmail returns the user registered with email or nil.
func (s *State) FindUserByEmail(email string) *User {
	for _, u := range s.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// MatchesForNGO returns the NGO's matches in stored order.
func (s *State) MatchesForNGO(ngoID string) []*Match {
	var out []*Match
	for _, m := range s.Matches {
		if m.NGOID == ngoID {
			out = append(out, m)
		}
	}
	return out
}
