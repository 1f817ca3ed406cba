package negotiation

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"collabflow/internal/domain/money"
	"collabflow/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxMessageLength = 1000

var (
	ErrInvalidParty     = errs.Validation("offer author must be brand or creator")
	ErrMessageTooLong   = errs.Validation("offer message exceeds maximum length")
	ErrCurrencyMismatch = errs.Validation("offer currency differs from the request currency")
	ErrBrokenSequence   = errs.Integrity("negotiation history is not a contiguous sequence")
)

type Party string

const (
	PartyBrand   Party = "brand"
	PartyCreator Party = "creator"
)

func (p Party) IsValid() bool { return p == PartyBrand || p == PartyCreator }

// Entry is one offer. Entries are never edited once written.
type Entry struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	Sequence  int
	Author    Party
	AuthorID  uuid.UUID
	Amount    money.Money
	Message   string
	CreatedAt time.Time
}

// Ledger is the offer history of one request.
type Ledger struct {
	requestID uuid.UUID
	entries   []Entry
	appended  int
}

func NewLedger(requestID uuid.UUID) *Ledger {
	return &Ledger{requestID: requestID}
}

// ReconstructLedger rebuilds a ledger from stored entries in any order.
func ReconstructLedger(requestID uuid.UUID, entries []Entry) (*Ledger, error) {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Sequence < cp[j].Sequence })
	for i, e := range cp {
		if e.Sequence != i+1 || e.RequestID != requestID {
			return nil, ErrBrokenSequence
		}
	}
	return &Ledger{requestID: requestID, entries: cp}, nil
}

func (l *Ledger) RequestID() uuid.UUID { return l.requestID }
func (l *Ledger) Len() int             { return len(l.entries) }

func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Appended returns entries added since the ledger was loaded.
func (l *Ledger) Appended() []Entry {
	out := make([]Entry, l.appended)
	copy(out, l.entries[len(l.entries)-l.appended:])
	return out
}

func (l *Ledger) Latest() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// CurrentOffer is the amount on the table: the latest entry's amount.
func (l *Ledger) CurrentOffer() (money.Money, bool) {
	return CurrentOffer(l.entries)
}

func (l *Ledger) Append(author Party, authorID uuid.UUID, amount money.Money, message string, now time.Time) (Entry, error) {
	if !author.IsValid() {
		return Entry{}, ErrInvalidParty
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return Entry{}, ErrMessageTooLong
	}
	if latest, ok := l.Latest(); ok && latest.Amount.Currency() != amount.Currency() {
		return Entry{}, ErrCurrencyMismatch
	}
	e := Entry{
		ID:        uuid.New(),
		RequestID: l.requestID,
		Sequence:  len(l.entries) + 1,
		Author:    author,
		AuthorID:  authorID,
		Amount:    amount,
		Message:   message,
		CreatedAt: now,
	}
	l.entries = append(l.entries, e)
	l.appended++
	return e, nil
}

// CurrentOffer returns the amount of the highest-sequence entry.
func CurrentOffer(entries []Entry) (money.Money, bool) {
	if len(entries) == 0 {
		return money.Money{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Sequence > latest.Sequence {
			latest = e
		}
	}
	return latest.Amount, true
}
