package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"serviceboard/internal/board"
	"serviceboard/internal/model"
)

// Store orchestrates fetch and refetch of board data for the viewer
// side. It owns all fetched state exclusively: collaborators never
// write to it directly, they invalidate through the named entry points
// and the store refetches. One Store serves one viewing session.
type Store struct {
	client *Client
	now    func() time.Time

	mu     sync.Mutex
	active string
	boards map[string]*boardState
}

type boardState struct {
	// gen guards against stale fetches: a response only lands if the
	// generation it was started under is still current.
	gen    int
	cancel context.CancelFunc

	token    string
	unlocked bool

	meta      *BoardMeta
	actions   []model.Action
	sr        *model.ServiceRequest
	appts     []model.Appointment
	feed      []board.FeedEntry
	tracker   *board.Tracker
	next      *model.Appointment
	highlight bool

	loading bool
	locked  bool
	err     error
}

// Snapshot is the read-only view of one board's state.
type Snapshot struct {
	Meta            *BoardMeta
	Feed            []board.FeedEntry
	NextAppointment *model.Appointment
	// Highlight is true when the next appointment was selected for the
	// first time this session and the one-shot highlight should show.
	Highlight bool
	Loading   bool
	Locked    bool
	Err       error
}

func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		now:    time.Now,
		boards: make(map[string]*boardState),
	}
}

func (s *Store) state(ref string) *boardState {
	st, ok := s.boards[ref]
	if !ok {
		st = &boardState{tracker: board.NewTracker()}
		s.boards[ref] = st
	}
	return st
}

// Load makes ref the active board and fetches its data. If a fetch for
// a different board is still outstanding it is cancelled: a late
// response for a stale board must never populate state.
func (s *Store) Load(ctx context.Context, ref string) {
	s.mu.Lock()
	if s.active != "" && s.active != ref {
		if prev, ok := s.boards[s.active]; ok && prev.cancel != nil {
			prev.cancel()
		}
	}
	s.active = ref
	fctx, gen := s.beginFetchLocked(ctx, ref)
	s.mu.Unlock()

	s.fetch(fctx, ref, gen)
}

// SubmitPassword verifies the shared password for a gated board. On
// success the board token is stored, the board transitions to unlocked
// exactly once for the session, and exactly one refetch runs. On a
// validation failure the error is returned with no retry and no
// lockout.
func (s *Store) SubmitPassword(ctx context.Context, ref, password string) error {
	s.mu.Lock()
	st := s.state(ref)
	if st.unlocked {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	token, err := s.client.VerifyPassword(ctx, ref, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	st.token = token
	st.unlocked = true
	st.locked = false
	fctx, gen := s.beginFetchLocked(ctx, ref)
	s.mu.Unlock()

	s.fetch(fctx, ref, gen)
	return nil
}

// OnActionAdded is the invalidation entry point the external add-action
// form signals after a successful submit.
func (s *Store) OnActionAdded(ctx context.Context, ref string) {
	s.invalidate(ctx, ref)
}

// OnActionUpdate is the invalidation entry point the action-card editor
// signals after any state change.
func (s *Store) OnActionUpdate(ctx context.Context, ref string) {
	s.invalidate(ctx, ref)
}

// OnAppointmentConfirmed is signalled specifically for appointment
// confirmations; the refetch also re-derives the next-appointment
// selection.
func (s *Store) OnAppointmentConfirmed(ctx context.Context, ref string) {
	s.invalidate(ctx, ref)
}

func (s *Store) invalidate(ctx context.Context, ref string) {
	s.mu.Lock()
	fctx, gen := s.beginFetchLocked(ctx, ref)
	s.mu.Unlock()

	s.fetch(fctx, ref, gen)
}

// beginFetchLocked cancels the board's outstanding fetch, opens a new
// cancellation scope and bumps the generation. Caller holds s.mu.
func (s *Store) beginFetchLocked(ctx context.Context, ref string) (context.Context, int) {
	st := s.state(ref)
	if st.cancel != nil {
		st.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	st.gen++
	st.loading = true
	st.err = nil
	return fctx, st.gen
}

// fetch runs the three round-trips and lands the result. It runs in the
// caller's goroutine; suspension points are exactly the network calls.
func (s *Store) fetch(ctx context.Context, ref string, gen int) {
	s.mu.Lock()
	token := s.state(ref).token
	s.mu.Unlock()

	meta, err := s.client.GetBoard(ctx, ref)
	if err != nil {
		s.land(ctx, ref, gen, func(st *boardState) {
			st.err = err
			st.loading = false
		})
		return
	}

	actions, sr, err := s.client.GetActions(ctx, ref, token)
	if errors.Is(err, ErrAuthRequired) {
		// Locked: park with no action data cached or rendered.
		s.land(ctx, ref, gen, func(st *boardState) {
			st.meta = meta
			st.locked = true
			st.loading = false
			st.actions = nil
			st.sr = nil
			st.feed = nil
		})
		return
	}
	if err != nil {
		s.land(ctx, ref, gen, func(st *boardState) {
			st.err = err
			st.loading = false
		})
		return
	}

	appts, err := s.client.GetAppointments(ctx, ref)
	if err != nil {
		s.land(ctx, ref, gen, func(st *boardState) {
			st.err = err
			st.loading = false
		})
		return
	}

	now := s.now()
	s.land(ctx, ref, gen, func(st *boardState) {
		st.meta = meta
		st.actions = actions
		st.sr = sr
		st.appts = appts
		st.feed = board.BuildFeed(actions, sr)
		st.next, st.highlight = st.tracker.Observe(appts, now)
		st.locked = false
		st.loading = false
		st.err = nil
	})
}

// land applies a state mutation unless the fetch was cancelled or a
// newer fetch superseded it.
func (s *Store) land(ctx context.Context, ref string, gen int, apply func(*boardState)) {
	if ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(ref)
	if st.gen != gen {
		return
	}
	apply(st)
}

// Snapshot returns the current view of a board's state.
func (s *Store) Snapshot(ref string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.boards[ref]
	if !ok {
		return Snapshot{}
	}
	feed := make([]board.FeedEntry, len(st.feed))
	copy(feed, st.feed)
	return Snapshot{
		Meta:            st.meta,
		Feed:            feed,
		NextAppointment: st.next,
		Highlight:       st.highlight,
		Loading:         st.loading,
		Locked:          st.locked,
		Err:             st.err,
	}
}
