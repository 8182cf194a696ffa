package game

import (
	"fmt"
	"loveletter/utils"

	"golang.org/x/exp/rand"
)

// MaxPlayers is the largest supported table
const MaxPlayers = 4

// PlayerID identifies a player. IDs start at 1; 0 means "no player".
type PlayerID int

const NoPlayer PlayerID = 0

func (id PlayerID) String() string {
	if id == NoPlayer {
		return "nobody"
	}
	return fmt.Sprintf("Player%d", int(id))
}

// Player holds the per-round flags of a seat. Players are identified by ID only.
type Player struct {
	ID       PlayerID
	Lost     bool // Eliminated this round
	Defence  bool // Protected by the Maid until their next turn starts
	WonRound bool
}

// Players is the ordered, cyclic seating of a match.
type Players struct {
	seats []Player
	next  int // Seat index of the next player to move
}

func NewPlayers(n int) Players {
	seats := make([]Player, n)
	for i := range seats {
		seats[i] = Player{ID: PlayerID(i + 1)}
	}
	return Players{seats: seats}
}

// Clone returns a copy that shares nothing with p.
func (p Players) Clone() Players {
	seats := make([]Player, len(p.seats))
	copy(seats, p.seats)
	return Players{seats: seats, next: p.next}
}

func (p Players) Len() int {
	return len(p.seats)
}

// IDs returns player IDs in turn order.
func (p Players) IDs() []PlayerID {
	ids := make([]PlayerID, len(p.seats))
	for i, seat := range p.seats {
		ids[i] = seat.ID
	}
	return ids
}

func (p Players) index(id PlayerID) int {
	return utils.FindIndexFunc(p.seats, func(seat Player) bool { return seat.ID == id })
}

// Get returns the player with the given ID. It panics on unknown IDs.
func (p Players) Get(id PlayerID) *Player {
	i := p.index(id)
	if i < 0 {
		panic(fmt.Sprintf("unknown player %d", id))
	}
	return &p.seats[i]
}

// Next returns the next player who is still in the round and moves the cursor past them.
func (p *Players) Next() PlayerID {
	if p.Left() == 0 {
		panic("no players left in the round")
	}
	for p.seats[p.next].Lost {
		p.next = (p.next + 1) % len(p.seats)
	}
	current := p.seats[p.next].ID
	p.next = (p.next + 1) % len(p.seats)
	return current
}

func (p *Players) Kill(id PlayerID) {
	p.Get(id).Lost = true
}

// Left returns the number of players still in the round.
func (p Players) Left() int {
	count := 0
	for _, seat := range p.seats {
		if !seat.Lost {
			count++
		}
	}
	return count
}

// LeftPlayers returns the IDs of players still in the round, in turn order.
func (p Players) LeftPlayers() []PlayerID {
	ids := make([]PlayerID, 0, len(p.seats))
	for _, seat := range p.seats {
		if !seat.Lost {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// Victims returns the players an actor may target: not themselves, not
// eliminated and not protected.
func (p Players) Victims(actor PlayerID) []PlayerID {
	ids := make([]PlayerID, 0, len(p.seats))
	for _, seat := range p.seats {
		if seat.ID != actor && !seat.Lost && !seat.Defence {
			ids = append(ids, seat.ID)
		}
	}
	return ids
}

// Rotate cyclically shifts the seating so that id sits first.
func (p *Players) Rotate(id PlayerID) {
	i := p.index(id)
	if i <= 0 {
		return
	}
	rotated := make([]Player, 0, len(p.seats))
	rotated = append(rotated, p.seats[i:]...)
	rotated = append(rotated, p.seats[:i]...)
	p.seats = rotated
}

func (p *Players) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.seats), func(i, j int) {
		p.seats[i], p.seats[j] = p.seats[j], p.seats[i]
	})
}

// Reset clears round flags and points the cursor at the first seat.
func (p *Players) Reset() {
	p.next = 0
	for i := range p.seats {
		p.seats[i].Lost = false
		p.seats[i].Defence = false
		p.seats[i].WonRound = false
	}
}
