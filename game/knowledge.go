package game

// Knowledge records what each player has confirmed about other players'
// cards, plus the guesses that failed against each player.
//
// A seen fact is a single slot per (observer, subject): it names the card the
// observer knows the subject holds right now, or NoCard.
type Knowledge struct {
	seen  [MaxPlayers + 1][MaxPlayers + 1]Card
	wrong [MaxPlayers + 1]CardCounts
}

// Fact is one seen card, used to describe knowledge in setups and views.
type Fact struct {
	Observer PlayerID
	Subject  PlayerID
	Card     Card
}

func (k *Knowledge) Seen(observer, subject PlayerID) Card {
	return k.seen[observer][subject]
}

// See records that observer now knows subject holds c. Players never record
// facts about themselves.
func (k *Knowledge) See(observer, subject PlayerID, c Card) {
	if observer == subject {
		return
	}
	k.seen[observer][subject] = c
}

func (k *Knowledge) Forget(observer, subject PlayerID) {
	k.seen[observer][subject] = NoCard
}

// ForgetSubject drops every fact about subject.
func (k *Knowledge) ForgetSubject(subject PlayerID) {
	for observer := range k.seen {
		k.seen[observer][subject] = NoCard
	}
}

// ForgetHeld drops facts about subject that name c.
func (k *Knowledge) ForgetHeld(subject PlayerID, c Card) {
	for observer := range k.seen {
		if k.seen[observer][subject] == c {
			k.seen[observer][subject] = NoCard
		}
	}
}

// ForgetCard drops every fact naming c, whoever it was about.
func (k *Knowledge) ForgetCard(c Card) {
	for observer := range k.seen {
		for subject := range k.seen[observer] {
			if k.seen[observer][subject] == c {
				k.seen[observer][subject] = NoCard
			}
		}
	}
}

// Facts lists observer's current facts in subject order.
func (k *Knowledge) Facts(observer PlayerID) []Fact {
	facts := []Fact{}
	for subject, c := range k.seen[observer] {
		if c != NoCard {
			facts = append(facts, Fact{Observer: observer, Subject: PlayerID(subject), Card: c})
		}
	}
	return facts
}

// SeenBy lists the cards observers have confirmed in subject's hand, in
// observer order.
func (k *Knowledge) SeenBy(subject PlayerID, observers []PlayerID) []Card {
	cards := []Card{}
	for _, observer := range observers {
		if c := k.seen[observer][subject]; c != NoCard {
			cards = append(cards, c)
		}
	}
	return cards
}

func (k *Knowledge) WrongGuesses(p PlayerID) CardCounts {
	return k.wrong[p]
}

func (k *Knowledge) AddWrongGuess(p PlayerID, c Card) {
	k.wrong[p][c]++
}

func (k *Knowledge) ClearWrongGuesses(p PlayerID) {
	k.wrong[p] = CardCounts{}
}

// exchange follows a King swap: third parties' facts and the wrong guesses
// travel with the cards, and each party learns the card it gave away.
func (k *Knowledge) exchange(a, b PlayerID, fromA, fromB Card) {
	for observer := range k.seen {
		if PlayerID(observer) == a || PlayerID(observer) == b {
			continue
		}
		k.seen[observer][a], k.seen[observer][b] = k.seen[observer][b], k.seen[observer][a]
	}
	k.wrong[a], k.wrong[b] = k.wrong[b], k.wrong[a]
	k.See(a, b, fromA)
	k.See(b, a, fromB)
}

func (k *Knowledge) Reset() {
	*k = Knowledge{}
}
