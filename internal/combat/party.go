package combat

import "match3battle/internal/match3"

// Roster is the player's side. Methods never modify the receiver; the ones
// that change members return an updated copy.
type Roster []Member

func (r Roster) Clone() Roster { return append(Roster(nil), r...) }

// FirstByElement returns the index of the first member of element e, alive or
// not, or -1. Later members sharing the element are never consulted.
func (r Roster) FirstByElement(e match3.Element) int {
	for i := range r {
		if r[i].Element == e {
			return i
		}
	}
	return -1
}

// Attacker returns the member that answers for a group of kind e, or -1 when
// that member is missing or down.
func (r Roster) Attacker(e match3.Element) int {
	i := r.FirstByElement(e)
	if i < 0 || !r[i].Alive() {
		return -1
	}
	return i
}

func (r Roster) Living() []int {
	var out []int
	for i := range r {
		if r[i].Alive() {
			out = append(out, i)
		}
	}
	return out
}

func (r Roster) AnyAlive() bool {
	for i := range r {
		if r[i].Alive() {
			return true
		}
	}
	return false
}

func (r Roster) Index(id string) int {
	for i := range r {
		if r[i].ID == id {
			return i
		}
	}
	return -1
}

// ChargeGroups gives amount sp to the attacker of every group, once per group.
func (r Roster) ChargeGroups(groups []match3.Group, amount int) Roster {
	out := r.Clone()
	for _, g := range groups {
		if i := out.Attacker(g.Kind); i >= 0 {
			out[i] = out[i].Charge(amount)
		}
	}
	return out
}

// DecayBuffs runs the end-of-turn buff countdown on every member.
func (r Roster) DecayBuffs() Roster {
	out := r.Clone()
	for i := range out {
		out[i] = out[i].DecayBuff()
	}
	return out
}
